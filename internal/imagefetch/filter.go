package imagefetch

import "strings"

// blockedHosts are marketplaces whose images may not be reused.
var blockedHosts = []string{"amazon.", "ebay.", "aliexpress.", "alibaba.", "walmart."}

// IsAllowed reports whether the URL avoids every blocked marketplace host.
func IsAllowed(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, host := range blockedHosts {
		if strings.Contains(lower, host) {
			return false
		}
	}
	return true
}

// Dedupe drops case-insensitive repeats, keeping the first spelling.
func Dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		key := strings.ToLower(u)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, u)
	}
	return out
}

// clean applies the host filter and dedupe, then caps the list at limit.
func clean(urls []string, limit int) []string {
	allowed := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" && IsAllowed(u) {
			allowed = append(allowed, u)
		}
	}
	allowed = Dedupe(allowed)
	if limit >= 0 && len(allowed) > limit {
		allowed = allowed[:limit]
	}
	return allowed
}
