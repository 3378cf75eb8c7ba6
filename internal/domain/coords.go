package domain

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Valid reports whether the pair is usable: both components finite, latitude
// in [-90, 90], longitude in [-180, 180], and not exactly (0, 0).
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return false
	}
	return !(c.Lat == 0 && c.Lng == 0)
}

// HasCoord reports whether a single coordinate value is present. Zero is
// excluded because it is indistinguishable from unset in the source data.
func HasCoord(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v != 0
}

// FlexCoord is a coordinate decoded from loosely-typed JSON: accepts numbers,
// numeric strings, null, "" and the literal string "null". Anything absent or
// unparseable decodes to a value for which HasCoord is false.
type FlexCoord float64

var jsonNull = []byte("null")

func (f *FlexCoord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*f = 0
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*f = FlexCoord(math.NaN())
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" || strings.EqualFold(s, "null") {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = FlexCoord(math.NaN())
		return nil
	}
	*f = FlexCoord(n)
	return nil
}

func (f FlexCoord) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return jsonNull, nil
	}
	return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
}

// ShortLocation derives a readable location from a geocoder display name by
// taking its first three comma-separated segments.
func ShortLocation(displayName string) string {
	if displayName == "" {
		return ""
	}
	parts := strings.Split(displayName, ",")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
