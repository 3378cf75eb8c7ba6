package scrape

import (
	"regexp"
	"strings"
)

var (
	streetRe   = regexp.MustCompile(`(?i)"streetAddress"\s*:\s*"([^"]+)"`)
	localityRe = regexp.MustCompile(`(?i)"addressLocality"\s*:\s*"([^"]+)"`)
	regionRe   = regexp.MustCompile(`(?i)"addressRegion"\s*:\s*"([^"]+)"`)
	countryRe  = regexp.MustCompile(`(?i)"addressCountry"\s*:\s*"([^"]+)"`)

	// "Co. Kerry" / "County Clare" style references in visible text.
	countyRe = regexp.MustCompile(`(?i)(?:Co\.|County)\s+([\w']+(?:\s+[\w']+)?)\s*,?\s*(Ireland|Eire)?`)

	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)green\s*fees?\s*(?:from|:)?\s*[€£$]\s*[\d,.]+`),
		regexp.MustCompile(`(?i)[€£$]\s*[\d,.]+\s*(?:per|/)\s*(?:person|round|player|green)`),
		regexp.MustCompile(`(?i)(?:from|price|rate|fee)\s*:?\s*[€£$]\s*[\d,.]+`),
		regexp.MustCompile(`(?i)"price"\s*:\s*"?([€£$]?\s*[\d,.]+)"?`),
	}

	priceKeyPrefixRe = regexp.MustCompile(`(?i)"price"\s*:\s*"?`)
)

// extractAddress prefers schema.org structured address fields joined with
// ", "; failing that it falls back to a county reference in the raw text.
func extractAddress(doc string) string {
	var parts []string
	for _, re := range []*regexp.Regexp{streetRe, localityRe, regionRe, countryRe} {
		if m := re.FindStringSubmatch(doc); m != nil {
			parts = append(parts, m[1])
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}

	if m := countyRe.FindString(doc); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

// extractPrice finds the first green-fee/price mention. Structured "price"
// fields lose their JSON key and quoting.
func extractPrice(doc string) string {
	for _, re := range pricePatterns {
		m := re.FindString(doc)
		if m == "" {
			continue
		}
		m = priceKeyPrefixRe.ReplaceAllString(m, "")
		m = strings.TrimSuffix(m, `"`)
		return strings.TrimSpace(m)
	}
	return ""
}
