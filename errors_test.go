package webscrape_test

import (
	"errors"
	"fmt"
	"testing"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := webscrape.Errorf(webscrape.ENOTFOUND, "page %q not found", "example.edu/fees")

	assert.Equal(t, webscrape.ENOTFOUND, webscrape.ErrorCode(err))
	assert.Equal(t, "page \"example.edu/fees\" not found", webscrape.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webscrape.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webscrape.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, webscrape.EINTERNAL, webscrape.ErrorCode(errors.New("boom")))
	assert.Equal(t, "Internal error.", webscrape.ErrorMessage(errors.New("boom")))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("store: %w", webscrape.Errorf(webscrape.ECONFLICT, "duplicate capture"))

	assert.Equal(t, webscrape.ECONFLICT, webscrape.ErrorCode(err))
	assert.Equal(t, "duplicate capture", webscrape.ErrorMessage(err))
}
