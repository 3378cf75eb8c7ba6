package domain

import "time"

// ScrapedRecord holds the fields mined from a web page. Callers map it onto
// their own record shapes (itinerary activity, golf course, guide entry).
type ScrapedRecord struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Price       string    `json:"price"`
	URL         string    `json:"url"`
	SiteName    string    `json:"siteName"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// HasCoords reports whether the record carries a usable coordinate pair.
func (r ScrapedRecord) HasCoords() bool {
	return Coordinates{Lat: r.Lat, Lng: r.Lng}.Valid()
}

// GeocodeResult is a resolved place. An all-zero result means the lookup
// found nothing ("absent"); see Found.
type GeocodeResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}

// Found reports whether the result carries usable coordinates.
func (r GeocodeResult) Found() bool {
	return Coordinates{Lat: r.Lat, Lng: r.Lng}.Valid()
}

// BatchItem is one named record submitted for batch geocoding. Some source
// collections name their entries with "title" instead of "name"; both are
// accepted. Lat/Lng are FlexCoords because the collections store them loosely.
type BatchItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Location string    `json:"location,omitempty"`
	Lat      FlexCoord `json:"lat,omitempty"`
	Lng      FlexCoord `json:"lng,omitempty"`
}

// MissingCoords reports whether the item still needs geocoding.
func (i BatchItem) MissingCoords() bool {
	return !HasCoord(float64(i.Lat)) || !HasCoord(float64(i.Lng))
}

// Query returns the string to geocode for this item: the explicit location
// field when set, falling back to the name and then the title. Empty means
// "skip".
func (i BatchItem) Query() string {
	if i.Location != "" {
		return i.Location
	}
	if i.Name != "" {
		return i.Name
	}
	return i.Title
}

// GeocodeUpdate is the batch geocoder's output for one resolved item, merged
// back into the caller's collection by identifier.
type GeocodeUpdate struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Location string  `json:"location"`
}
