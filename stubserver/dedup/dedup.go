// Package dedup keeps re-ingested feed items out of the article corpus.
// Articles are fingerprinted by normalized URL and title; fingerprints
// are checked against a filter backed by RedisBloom when available, or
// an in-process set otherwise.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"newsdeck/types"
)

// Filter answers whether a fingerprint was seen before.
type Filter interface {
	Seen(fingerprint string) (bool, error)
	Add(fingerprint string) error
	Close() error
}

// Fingerprint normalizes the article's URL and title and returns a
// SHA-256 hex digest of "url|title". Normalization lowercases the host,
// strips fragments and tracking params (utm_*, fbclid, gclid), trims a
// trailing slash, and collapses title whitespace.
func Fingerprint(a *types.Article) (string, error) {
	if a == nil {
		return "", fmt.Errorf("nil article")
	}
	combined := normalizeURL(a.URL) + "|" + normalizeTitle(a.Title)
	h := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(h[:]), nil
}

func normalizeTitle(t string) string {
	return strings.Join(strings.Fields(strings.ToLower(t)), " ")
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	out := u.String()
	if strings.HasSuffix(out, "/") {
		out = strings.TrimRight(out, "/")
	}
	return out
}

// MemoryFilter is an exact in-process filter. It is the default when no
// Redis address is configured and the filter used in tests.
type MemoryFilter struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryFilter returns an empty in-process filter.
func NewMemoryFilter() *MemoryFilter {
	return &MemoryFilter{seen: make(map[string]struct{})}
}

func (m *MemoryFilter) Seen(fingerprint string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.seen[fingerprint]
	return ok, nil
}

func (m *MemoryFilter) Add(fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[fingerprint] = struct{}{}
	return nil
}

func (m *MemoryFilter) Close() error { return nil }
