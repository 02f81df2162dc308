package webscrape

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Allowlist is a set of lowercase domains. A URL is allowed if its host or
// any parent domain appears in the set. A nil Allowlist allows nothing:
// load failure fails closed.
type Allowlist struct {
	domains map[string]bool
}

// NewAllowlist builds an allowlist from domain strings. Entries are
// lowercased and trimmed; empty entries are dropped.
func NewAllowlist(domains []string) *Allowlist {
	set := make(map[string]bool, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			set[d] = true
		}
	}
	return &Allowlist{domains: set}
}

// ParseAllowlist parses the allowlist file format: a JSON array of
// lowercase domain strings.
func ParseAllowlist(data []byte) (*Allowlist, error) {
	var domains []string
	if err := json.Unmarshal(data, &domains); err != nil {
		return nil, Errorf(EINVALID, "invalid allowlist JSON: %v", err)
	}
	return NewAllowlist(domains), nil
}

// AllowsHost reports whether the host or any parent domain, stripped
// label by label, is in the set.
func (a *Allowlist) AllowsHost(host string) bool {
	if a == nil {
		return false
	}
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	for host != "" {
		if a.domains[host] {
			return true
		}
		_, rest, ok := strings.Cut(host, ".")
		if !ok {
			break
		}
		host = rest
	}
	return false
}

// AllowsURL reports whether the URL's host is allowed.
func (a *Allowlist) AllowsURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return a.AllowsHost(u.Host)
}

// Len returns the number of allowed domains.
func (a *Allowlist) Len() int {
	if a == nil {
		return 0
	}
	return len(a.domains)
}
