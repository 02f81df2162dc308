package mock

import (
	"context"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

var _ webscrape.LineMemory = (*LineMemory)(nil)

// LineMemory is a mock implementation of webscrape.LineMemory.
type LineMemory struct {
	RememberLineFn  func(line string, alreadyNormalized bool) bool
	RememberLinesFn func(lines []string) int
	HasLineFn       func(line string) bool
	LenFn           func() int
}

func (m *LineMemory) RememberLine(line string, alreadyNormalized bool) bool {
	return m.RememberLineFn(line, alreadyNormalized)
}

func (m *LineMemory) RememberLines(lines []string) int {
	return m.RememberLinesFn(lines)
}

func (m *LineMemory) HasLine(line string) bool {
	return m.HasLineFn(line)
}

func (m *LineMemory) Len() int {
	return m.LenFn()
}

var _ webscrape.LineStore = (*LineStore)(nil)

// LineStore is a mock implementation of webscrape.LineStore.
type LineStore struct {
	SaveKeysFn func(ctx context.Context, keys []string) error
	LoadKeysFn func(ctx context.Context) ([]string, error)
}

func (s *LineStore) SaveKeys(ctx context.Context, keys []string) error {
	return s.SaveKeysFn(ctx, keys)
}

func (s *LineStore) LoadKeys(ctx context.Context) ([]string, error) {
	return s.LoadKeysFn(ctx)
}
