// Package fs implements the file-based collaborators: the download
// boundary writer for exported text and the allowlist loader.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// Ensure Writer implements webscrape.FileWriter at compile time.
var _ webscrape.FileWriter = (*Writer)(nil)

// Writer writes exported text files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// SanitizeFilename reduces a requested filename to a safe basename. Path
// separators and parent references are stripped so a request can never
// escape the base directory. An empty result falls back to "capture.txt".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "capture.txt"
	}
	if filepath.Ext(name) == "" {
		name += ".txt"
	}
	return name
}

// WriteFile persists the request's text under the base directory. Write
// failures are reported in the response, not as an error, so the caller
// can relay them across the boundary.
func (w *Writer) WriteFile(ctx context.Context, req webscrape.FileRequest) (*webscrape.FileResponse, error) {
	if req.Text == "" {
		return nil, webscrape.Errorf(webscrape.EINVALID, "file text required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return &webscrape.FileResponse{Error: err.Error()}, nil
	}

	fullPath := filepath.Join(w.baseDir, SanitizeFilename(req.Filename))
	if err := os.WriteFile(fullPath, []byte(req.Text), 0644); err != nil {
		return &webscrape.FileResponse{Error: err.Error()}, nil
	}

	return &webscrape.FileResponse{OK: true}, nil
}
