package scrape

import (
	"net/url"
	"strings"
)

// irishPlaces is the gazetteer of well-known Irish place names and regions
// scanned for in page titles when no structured address exists.
var irishPlaces = []string{
	"Dublin", "Galway", "Cork", "Limerick", "Kerry", "Clare", "Doolin",
	"Lahinch", "Ballybunion", "Kinsale", "Dingle", "Killarney", "Ennis",
	"Westport", "Kilkenny", "Waterford", "Sligo", "Donegal", "Belfast",
	"Portrush", "Newcastle", "Howth", "Malahide", "Portmarnock", "Liscannor",
	"Waterville", "Kenmare", "Cobh", "Adare", "Dromoland", "Ashford",
	"Connemara", "Aran", "Cliffs of Moher", "Ring of Kerry", "Doonbeg",
	"Tralee", "Kilkee", "Clifden", "Athlone", "Trim", "Cashel",
}

// genericLabels are hostname labels too generic to seed a geocoding query.
var genericLabels = map[string]bool{
	"golf":  true,
	"hotel": true,
	"book":  true,
	"trip":  true,
	"visit": true,
}

// buildLocationQuery constructs the best geocoding query for a page. A
// structured address wins outright. Otherwise the title is scanned against
// the gazetteer and the hostname's first label is considered; whatever is
// found gets ", Ireland" appended. With no hints at all, the raw title is
// used, still biased to Ireland.
func buildLocationQuery(address, title, rawURL string) string {
	if address != "" {
		return address
	}

	var parts []string

	lowerTitle := strings.ToLower(title)
	for _, place := range irishPlaces {
		if strings.Contains(lowerTitle, strings.ToLower(place)) {
			parts = append(parts, place)
			break
		}
	}

	if label := hostnameLabel(rawURL); label != "" {
		parts = append(parts, label)
	}

	if len(parts) > 0 {
		return strings.Join(parts, " ") + ", Ireland"
	}
	return title + ", Ireland"
}

// hostnameLabel derives a place-name candidate from the URL's hostname:
// strip "www.", take the first label, skip short or generic words.
func hostnameLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	label := strings.SplitN(host, ".", 2)[0]
	if len(label) <= 3 || genericLabels[strings.ToLower(label)] {
		return ""
	}
	return label
}
