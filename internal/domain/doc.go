// Package domain models trip-planner enrichment data: records scraped from
// arbitrary web pages and geocoding results used to place them on a map.
//
// # Coordinate Conventions
//
// Source records store latitude/longitude as loosely-typed values that may
// arrive as numbers, numeric strings, empty strings, the literal string
// "null", or be missing entirely. A coordinate counts as present only when it
// parses to a finite, non-zero number; see [HasCoord] and [FlexCoord].
//
// The pair (0, 0) is always treated as "no coordinates". It is
// indistinguishable from an unset value in the source data, and nothing in an
// Ireland trip sits on null island anyway. The same rule applies to values
// extracted from page HTML and to geocoding responses: a result is usable only
// when both components are finite, latitude is within [-90, 90], longitude is
// within [-180, 180], and the pair is not exactly (0, 0). See
// [Coordinates.Valid].
//
// # Geocoding
//
// Free-text place names resolve to coordinates through a Nominatim-style
// place search restricted to country codes IE and GB. Nominatim's usage
// policy caps clients at roughly one request per second, which is why the
// batch geocoder processes items strictly sequentially with a fixed delay
// between requests. Successful lookups are cached for the process lifetime;
// failed lookups are never cached, so a later retry of the same query issues
// a fresh network call.
//
// # Scraping
//
// Page HTML is fetched through public CORS-proxy relays (redundant, because
// each proxy is individually unreliable and rate-limited) and mined with
// prioritized regex strategies rather than a DOM parser: Open Graph and
// Twitter meta tags, <title>/<h1> text, schema.org JSON fields, map embed
// URLs, data-* attributes, and geo.position meta tags. Extraction is
// best-effort: every field other than the title may end up empty.
//
// # Error Taxonomy
//
// [ErrUnsupportedScheme] rejects non-http(s) URLs before any network call.
// [FetchError] means every configured proxy failed; the user can retry.
// [ExtractionError] means the page fetched but contained no usable title; the
// user should enter details manually. Geocoding misses are not errors at all:
// they surface only as records with coordinates left unset.
package domain
