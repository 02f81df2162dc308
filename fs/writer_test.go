package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/codermillat/WebScrape-sub000/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "fees.txt", "fees.txt"},
		{"missing extension", "fees", "fees.txt"},
		{"strips directories", "/etc/passwd", "passwd.txt"},
		{"strips parent refs", "../../secret.txt", "secret.txt"},
		{"empty falls back", "", "capture.txt"},
		{"whitespace falls back", "   ", "capture.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.SanitizeFilename(tt.in))
		})
	}
}

func TestWriter_WriteFile(t *testing.T) {
	t.Parallel()

	t.Run("writes text to the base directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		resp, err := w.WriteFile(context.Background(), webscrape.FileRequest{
			Filename: "fees.txt",
			Text:     "B.Tech CSE — 280000 per year",
		})

		require.NoError(t, err)
		assert.True(t, resp.OK)

		data, err := os.ReadFile(filepath.Join(dir, "fees.txt"))
		require.NoError(t, err)
		assert.Equal(t, "B.Tech CSE — 280000 per year", string(data))
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())
		_, err := w.WriteFile(context.Background(), webscrape.FileRequest{Filename: "fees.txt"})

		require.Error(t, err)
		assert.Equal(t, webscrape.EINVALID, webscrape.ErrorCode(err))
	})

	t.Run("confines writes to the base directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		resp, err := w.WriteFile(context.Background(), webscrape.FileRequest{
			Filename: "../escape.txt",
			Text:     "text",
		})

		require.NoError(t, err)
		assert.True(t, resp.OK)

		_, statErr := os.Stat(filepath.Join(dir, "escape.txt"))
		assert.NoError(t, statErr)
		_, statErr = os.Stat(filepath.Join(filepath.Dir(dir), "escape.txt"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestLoadAllowlist(t *testing.T) {
	t.Parallel()

	t.Run("loads a JSON domain array", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "allowlist.json")
		require.NoError(t, os.WriteFile(path, []byte(`["example.edu", "sharda.ac.in"]`), 0644))

		al, err := fs.LoadAllowlist(path)
		require.NoError(t, err)
		assert.True(t, al.AllowsHost("www.example.edu"))
		assert.True(t, al.AllowsHost("admissions.sharda.ac.in"))
		assert.False(t, al.AllowsHost("evil.com"))
	})

	t.Run("missing file returns nil allowlist", func(t *testing.T) {
		t.Parallel()

		al, err := fs.LoadAllowlist(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Nil(t, al)
		assert.False(t, al.AllowsHost("example.edu"))
	})

	t.Run("malformed JSON returns nil allowlist", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "allowlist.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0644))

		al, err := fs.LoadAllowlist(path)
		require.Error(t, err)
		assert.Nil(t, al)
	})
}
