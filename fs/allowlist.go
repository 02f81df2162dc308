package fs

import (
	"os"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// LoadAllowlist reads and parses an allowlist file. Any failure returns a
// nil allowlist, which allows nothing.
func LoadAllowlist(path string) (*webscrape.Allowlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return webscrape.ParseAllowlist(data)
}
