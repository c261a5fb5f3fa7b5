package openproject

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// OptionCache memoizes custom-option lookups for the lifetime of one export
// run. Keys are option hrefs; a key is written once after a successful fetch
// and never evicted. The cache is not safe for concurrent use.
type OptionCache struct {
	values map[string]string
}

func NewOptionCache() *OptionCache {
	return &OptionCache{values: make(map[string]string)}
}

// Len reports how many distinct options have been resolved so far.
func (c *OptionCache) Len() int {
	return len(c.values)
}

// OptionFetcher retrieves one custom-option value by href.
// (*HTTPClient).GetOption satisfies it.
type OptionFetcher func(ctx context.Context, href string) (string, error)

// ExtractID returns the trailing path segment of a resource href, such as
// "42" from "/api/v3/work_packages/42". Empty or malformed hrefs yield ""
// rather than an error.
func ExtractID(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}

// ResolveOption returns the display value behind an option href, consulting
// the cache first. An empty href resolves to "" without any lookup. A failed
// fetch propagates to the caller and caches nothing, so a retry with the
// same href fetches again.
func ResolveOption(ctx context.Context, cache *OptionCache, fetch OptionFetcher, href string) (string, error) {
	if href == "" {
		return "", nil
	}
	if value, ok := cache.values[href]; ok {
		return value, nil
	}
	value, err := fetch(ctx, href)
	if err != nil {
		return "", fmt.Errorf("resolve option %s: %w", href, err)
	}
	cache.values[href] = value
	return value, nil
}
