package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mgegen15-dev/ireland-planner/internal/domain"
)

// Coordinate extraction is a prioritized list of independently testable
// strategies combined first-match-wins. A candidate only counts when it
// passes domain.Coordinates.Valid, so an embedded (0,0) or an out-of-range
// pair falls through to the next strategy.

type coordStrategy struct {
	name    string
	extract func(doc string) (domain.Coordinates, bool)
}

var coordStrategies = []coordStrategy{
	{"structured_data", structuredDataCoords},
	{"map_link", mapLinkCoords},
	{"data_attribute", dataAttributeCoords},
	{"geo_meta", geoMetaCoords},
}

var (
	jsonLatRe = regexp.MustCompile(`(?i)"latitude"\s*:\s*["']?([-\d.]+)["']?`)
	jsonLngRe = regexp.MustCompile(`(?i)"longitude"\s*:\s*["']?([-\d.]+)["']?`)

	mapLinkRes = []*regexp.Regexp{
		regexp.MustCompile(`@([-\d.]+),([-\d.]+)`),
		regexp.MustCompile(`center=([-\d.]+),([-\d.]+)`),
		regexp.MustCompile(`ll=([-\d.]+),([-\d.]+)`),
	}

	dataLatRe = regexp.MustCompile(`(?i)data-lat=["']([-\d.]+)["']`)
	dataLngRe = regexp.MustCompile(`(?i)data-(?:lng|lon|longitude)=["']([-\d.]+)["']`)
)

// extractCoordinates runs the strategies in priority order and returns the
// first validated pair along with the winning strategy's name.
func extractCoordinates(doc string) (domain.Coordinates, string, bool) {
	for _, s := range coordStrategies {
		if c, ok := s.extract(doc); ok {
			return c, s.name, true
		}
	}
	return domain.Coordinates{}, "", false
}

func parsePair(latStr, lngStr string) (domain.Coordinates, bool) {
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		return domain.Coordinates{}, false
	}
	c := domain.Coordinates{Lat: lat, Lng: lng}
	return c, c.Valid()
}

// structuredDataCoords reads schema.org GeoCoordinates fields embedded as
// JSON anywhere in the page.
func structuredDataCoords(doc string) (domain.Coordinates, bool) {
	latM := jsonLatRe.FindStringSubmatch(doc)
	lngM := jsonLngRe.FindStringSubmatch(doc)
	if latM == nil || lngM == nil {
		return domain.Coordinates{}, false
	}
	return parsePair(latM[1], lngM[1])
}

// mapLinkCoords reads Google Maps embed/link URL patterns: "@lat,lng",
// "center=lat,lng" or "ll=lat,lng".
func mapLinkCoords(doc string) (domain.Coordinates, bool) {
	for _, re := range mapLinkRes {
		if m := re.FindStringSubmatch(doc); m != nil {
			if c, ok := parsePair(m[1], m[2]); ok {
				return c, true
			}
		}
	}
	return domain.Coordinates{}, false
}

func dataAttributeCoords(doc string) (domain.Coordinates, bool) {
	latM := dataLatRe.FindStringSubmatch(doc)
	lngM := dataLngRe.FindStringSubmatch(doc)
	if latM == nil || lngM == nil {
		return domain.Coordinates{}, false
	}
	return parsePair(latM[1], lngM[1])
}

// geoMetaCoords reads a geo.position meta tag formatted as "lat;lng".
func geoMetaCoords(doc string) (domain.Coordinates, bool) {
	pos := metaContent(doc, "geo.position")
	if pos == "" {
		return domain.Coordinates{}, false
	}
	parts := strings.Split(pos, ";")
	if len(parts) != 2 {
		return domain.Coordinates{}, false
	}
	return parsePair(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
}
