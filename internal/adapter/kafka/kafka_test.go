package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgegen15-dev/ireland-planner/internal/domain"
)

func TestSerializeScrape(t *testing.T) {
	scrapedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	rec := domain.ScrapedRecord{
		Title:     "Vaughan's Anchor Inn",
		Location:  "Liscannor, Co. Clare",
		Lat:       52.9715,
		Lng:       -9.3931,
		URL:       "https://vaughans.ie/",
		SiteName:  "Vaughan's",
		ScrapedAt: scrapedAt,
	}

	msg, err := serializeScrape(rec)
	require.NoError(t, err)

	assert.Equal(t, "https://vaughans.ie/", string(msg.Key))

	var decoded domain.ScrapedRecord
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, rec.Title, decoded.Title)
	assert.Equal(t, rec.Lat, decoded.Lat)
	assert.Equal(t, rec.Lng, decoded.Lng)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, KindScrape, headers["event_kind"])
	assert.Equal(t, "2026-03-14T09:30:00Z", headers["scraped_at"])
}

func TestSerializeUpdate(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	domain.SetClock(fake)
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	msg, err := serializeUpdate("stop-7", domain.GeocodeUpdate{
		Lat:      53.3498,
		Lng:      -6.2603,
		Location: "Dublin, County Dublin, Ireland",
	})
	require.NoError(t, err)

	assert.Equal(t, "stop-7", string(msg.Key))

	var event GeocodeEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "stop-7", event.ID)
	assert.Equal(t, 53.3498, event.Lat)
	assert.Equal(t, -6.2603, event.Lng)
	assert.Equal(t, "Dublin, County Dublin, Ireland", event.Location)
	assert.Equal(t, "2026-03-14T10:00:00Z", event.ResolvedAt)
}
