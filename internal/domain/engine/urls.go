package engine

import (
	"net/url"
	"regexp"
	"strings"
)

// URLInfo is one extracted link: the raw URL, its lowercased host, and the
// registrable form of that host.
type URLInfo struct {
	URL               string
	Host              string
	RegistrableDomain string
}

var (
	urlPattern          = regexp.MustCompile(`(?i)https?://[^\s<>"')\]]+`)
	trailingPunctuation = regexp.MustCompile(`[.,;:!?)>\]]+$`)
)

// extractURLs scans the body for http(s) URLs, deduplicated by host in
// first-seen order. Bodies over the configured ceiling are skipped entirely
// (treated as having no URLs), and at most MaxURLs candidates are examined.
// Malformed URLs are silently discarded.
func (e *Extractor) extractURLs(body string) []URLInfo {
	if body == "" {
		return nil
	}
	if len(body) > e.cfg.MaxBodyLengthForURLScan {
		return nil
	}

	matches := urlPattern.FindAllString(body, -1)
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > e.cfg.MaxURLs {
		matches = matches[:e.cfg.MaxURLs]
	}

	var results []URLInfo
	seenHosts := make(map[string]bool)

	for _, raw := range matches {
		candidate := trailingPunctuation.ReplaceAllString(raw, "")
		parsed, err := url.Parse(candidate)
		if err != nil {
			continue
		}
		host := strings.ToLower(parsed.Hostname())
		if host == "" {
			continue
		}
		if seenHosts[host] {
			continue
		}
		seenHosts[host] = true
		results = append(results, URLInfo{
			URL:               candidate,
			Host:              host,
			RegistrableDomain: registrableDomain(host),
		})
	}
	return results
}

// twoLabelSuffixes are common country-code suffixes that occupy two labels,
// so the registrable domain keeps three.
var twoLabelSuffixes = map[string]bool{
	"co.uk":  true,
	"com.au": true,
	"co.nz":  true,
	"co.za":  true,
	"com.br": true,
	"co.jp":  true,
	"co.kr":  true,
	"com.mx": true,
	"co.in":  true,
}

// registrableDomain strips subdomains from a hostname, e.g.
// "mail.example.co.uk" -> "example.co.uk". This deliberately covers only
// the common two-label suffixes above rather than the full public suffix
// list; unknown hosts fall back to their last two labels.
func registrableDomain(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}
	lastTwo := strings.Join(parts[len(parts)-2:], ".")
	if twoLabelSuffixes[lastTwo] {
		return strings.Join(parts[len(parts)-3:], ".")
	}
	return lastTwo
}
