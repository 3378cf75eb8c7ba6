package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatesValid(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
		want   bool
	}{
		{"dublin", Coordinates{Lat: 53.3498, Lng: -6.2603}, true},
		{"null island", Coordinates{Lat: 0, Lng: 0}, false},
		{"zero lat only", Coordinates{Lat: 0, Lng: -6.26}, true},
		{"lat out of range", Coordinates{Lat: 91, Lng: 0}, false},
		{"lng out of range", Coordinates{Lat: 53, Lng: -181}, false},
		{"nan lat", Coordinates{Lat: math.NaN(), Lng: -6.26}, false},
		{"inf lng", Coordinates{Lat: 53, Lng: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coords.Valid())
		})
	}
}

func TestHasCoord(t *testing.T) {
	assert.True(t, HasCoord(52.97))
	assert.True(t, HasCoord(-9.43))
	assert.False(t, HasCoord(0))
	assert.False(t, HasCoord(math.NaN()))
	assert.False(t, HasCoord(math.Inf(-1)))
}

func TestFlexCoordUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantNaN bool
	}{
		{"number", `52.9715`, 52.9715, false},
		{"negative number", `-9.4309`, -9.4309, false},
		{"numeric string", `"53.27"`, 53.27, false},
		{"padded numeric string", `" 53.27 "`, 53.27, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"literal null string", `"null"`, 0, false},
		{"uppercase null string", `"NULL"`, 0, false},
		{"garbage string", `"abc"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexCoord
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			if tt.wantNaN {
				assert.True(t, math.IsNaN(float64(f)))
				return
			}
			assert.Equal(t, tt.want, float64(f))
		})
	}
}

func TestFlexCoordMarshal(t *testing.T) {
	data, err := json.Marshal(FlexCoord(52.9715))
	require.NoError(t, err)
	assert.Equal(t, "52.9715", string(data))

	data, err = json.Marshal(FlexCoord(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestShortLocation(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{
			"long display name truncated",
			"Cliffs of Moher, Liscannor, County Clare, Munster, Ireland",
			"Cliffs of Moher, Liscannor, County Clare",
		},
		{
			"short display name unchanged",
			"Dublin, Ireland",
			"Dublin, Ireland",
		},
		{
			"segments trimmed",
			"Galway ,  County Galway ,  Connacht, Ireland",
			"Galway, County Galway, Connacht",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortLocation(tt.display))
		})
	}
}

func TestBatchItemMissingCoords(t *testing.T) {
	tests := []struct {
		name string
		item BatchItem
		want bool
	}{
		{"both set", BatchItem{Lat: 53.35, Lng: -6.26}, false},
		{"both zero", BatchItem{}, true},
		{"lat only", BatchItem{Lat: 53.35}, true},
		{"nan lng", BatchItem{Lat: 53.35, Lng: FlexCoord(math.NaN())}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.MissingCoords())
		})
	}
}

func TestBatchItemQuery(t *testing.T) {
	assert.Equal(t, "Doolin, Co. Clare", BatchItem{Name: "Gus O'Connor's", Location: "Doolin, Co. Clare"}.Query())
	assert.Equal(t, "Gus O'Connor's", BatchItem{Name: "Gus O'Connor's"}.Query())
	assert.Equal(t, "Cliffs of Moher", BatchItem{Title: "Cliffs of Moher"}.Query())
	assert.Equal(t, "Kylemore Abbey", BatchItem{Name: "Kylemore Abbey", Title: "Visit Kylemore"}.Query())
	assert.Equal(t, "", BatchItem{}.Query())
}

func TestBatchItemTitleKeyedJSON(t *testing.T) {
	var item BatchItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"g1","title":"Cliffs of Moher"}`), &item))

	assert.Equal(t, "Cliffs of Moher", item.Query())
	assert.True(t, item.MissingCoords())
}
