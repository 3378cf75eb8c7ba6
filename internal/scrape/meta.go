package scrape

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// metaPatterns builds the prioritized regex list for one meta property:
// og: property/content in either attribute order, plain name= variants, then
// the twitter-card name. First match wins.
func metaPatterns(property string) []*regexp.Regexp {
	p := regexp.QuoteMeta(property)
	return []*regexp.Regexp{
		regexp.MustCompile(fmt.Sprintf(`(?i)<meta[^>]+property=["']og:%s["'][^>]+content=["']([^"']+)["']`, p)),
		regexp.MustCompile(fmt.Sprintf(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:%s["']`, p)),
		regexp.MustCompile(fmt.Sprintf(`(?i)<meta[^>]+name=["']%s["'][^>]+content=["']([^"']+)["']`, p)),
		regexp.MustCompile(fmt.Sprintf(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+name=["']%s["']`, p)),
		regexp.MustCompile(fmt.Sprintf(`(?i)<meta[^>]+name=["']twitter:%s["'][^>]+content=["']([^"']+)["']`, p)),
	}
}

var (
	titlePatterns       = metaPatterns("title")
	descriptionPatterns = metaPatterns("description")
	siteNamePatterns    = metaPatterns("site_name")
	geoPositionPatterns = metaPatterns("geo.position")

	titleTagRe = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	h1TagRe    = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)

	boilerplateRe  = regexp.MustCompile(`(?i)\s*[|–—-]\s*(Official\s*(Site|Website)|Home|Welcome).*$`)
	welcomePrefix  = regexp.MustCompile(`(?i)^Welcome\s+to\s+`)
	suffixSepClass = `\s*[|\-–—]\s*`
)

// metaContent extracts a meta tag value for the given property, decoding HTML
// entities. Returns "" when no pattern matches.
func metaContent(doc, property string) string {
	var patterns []*regexp.Regexp
	switch property {
	case "title":
		patterns = titlePatterns
	case "description":
		patterns = descriptionPatterns
	case "site_name":
		patterns = siteNamePatterns
	case "geo.position":
		patterns = geoPositionPatterns
	default:
		patterns = metaPatterns(property)
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(doc); m != nil {
			return html.UnescapeString(strings.TrimSpace(m[1]))
		}
	}
	return ""
}

// extractTitle finds the page title: Open Graph / Twitter meta first, then
// the <title> tag, then the first <h1>.
func extractTitle(doc string) string {
	if t := metaContent(doc, "title"); t != "" {
		return t
	}
	if m := titleTagRe.FindStringSubmatch(doc); m != nil {
		return html.UnescapeString(strings.TrimSpace(m[1]))
	}
	if m := h1TagRe.FindStringSubmatch(doc); m != nil {
		return html.UnescapeString(strings.TrimSpace(m[1]))
	}
	return ""
}

func extractDescription(doc string) string {
	return metaContent(doc, "description")
}

// cleanTitle strips the site name when it trails the title behind a
// pipe/dash/em-dash separator, drops "- Official Site" style boilerplate,
// and removes a leading "Welcome to ".
func cleanTitle(title, siteName string) string {
	clean := title
	if siteName != "" && strings.Contains(clean, siteName) {
		suffixRe, err := regexp.Compile(`(?i)` + suffixSepClass + regexp.QuoteMeta(siteName) + `\s*$`)
		if err == nil {
			clean = suffixRe.ReplaceAllString(clean, "")
		}
	}
	clean = strings.TrimSpace(boilerplateRe.ReplaceAllString(clean, ""))
	clean = strings.TrimSpace(welcomePrefix.ReplaceAllString(clean, ""))
	return clean
}
