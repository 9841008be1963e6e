package flights

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offerWithPrice(id string, price float64) Offer {
	dep := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC).Add(time.Duration(price) * time.Minute)
	arr := dep.Add(30 * time.Hour)
	return Offer{
		ID:          id,
		Price:       price,
		DepartureAt: dep,
		ArrivalAt:   arr,
		Segments: []Segment{
			{From: "SCL", To: "DFW", DepartureAt: dep, ArrivalAt: dep.Add(10 * time.Hour), CarrierCode: "AA", FlightNumber: id},
			{From: "DFW", To: "NRT", DepartureAt: dep.Add(13 * time.Hour), ArrivalAt: arr, CarrierCode: "JL", FlightNumber: id},
		},
	}
}

func TestRank(t *testing.T) {
	prices := []float64{900, 500, 1200, 700, 650, 1500, 800, 450, 1100, 990, 2000, 610, 720, 1300, 580}
	offers := make([]Offer, 0, len(prices))
	for i, price := range prices {
		offers = append(offers, offerWithPrice(string(rune('a'+i)), price))
	}

	ranked := Rank(offers, MaxOffers)
	require.Len(t, ranked, MaxOffers)

	want := []float64{450, 500, 580, 610, 650, 700, 720, 800, 900, 990}
	for i, offer := range ranked {
		assert.Equal(t, want[i], offer.Price)
		assert.Equal(t, offer.Segments[0].DepartureAt, offer.DepartureAt, "departure of %s", offer.ID)
		assert.Equal(t, offer.Segments[len(offer.Segments)-1].ArrivalAt, offer.ArrivalAt, "arrival of %s", offer.ID)
	}

	// input is left in upstream order
	assert.Equal(t, 900.0, offers[0].Price)
}

func TestRankEdgeCases(t *testing.T) {
	t.Run("empty", func(tt *testing.T) {
		assert.Empty(tt, Rank(nil, MaxOffers))
	})
	t.Run("fewer than limit", func(tt *testing.T) {
		ranked := Rank([]Offer{offerWithPrice("a", 3), offerWithPrice("b", 1)}, MaxOffers)
		require.Len(tt, ranked, 2)
		assert.Equal(tt, "b", ranked[0].ID)
	})
	t.Run("ties keep upstream order", func(tt *testing.T) {
		ranked := Rank([]Offer{offerWithPrice("a", 5), offerWithPrice("b", 5), offerWithPrice("c", 1)}, 2)
		require.Len(tt, ranked, 2)
		assert.Equal(tt, "c", ranked[0].ID)
		assert.Equal(tt, "a", ranked[1].ID)
	})
}

func TestSearchLink(t *testing.T) {
	link := SearchLink("SCL", "NRT", "2026-10-17")
	assert.Equal(t, link, SearchLink("SCL", "NRT", "2026-10-17"))
	assert.NotEqual(t, link, SearchLink("SCL", "HND", "2026-10-17"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", u.Host)
	q := u.Query().Get("q")
	assert.True(t, strings.Contains(q, "from SCL"), q)
	assert.True(t, strings.Contains(q, "to NRT"), q)
	assert.True(t, strings.Contains(q, "on 2026-10-17"), q)
}

func TestOfferCarriersAndFlights(t *testing.T) {
	offer := offerWithPrice("100", 100)
	offer.Segments = append(offer.Segments, Segment{CarrierCode: "AA", FlightNumber: "7"})
	assert.Equal(t, []string{"AA", "JL"}, offer.Carriers())
	assert.Equal(t, []string{"AA100", "JL100", "AA7"}, offer.FlightNumbers())
}

func TestNewQuery(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	q := NewQuery("SCL", "NRT", time.Date(2026, 10, 17, 23, 30, 0, 0, santiago))
	assert.Equal(t, Query{Origin: "SCL", Destination: "NRT", Date: "2026-10-17", Adults: 1, Max: 10}, q)
}

func TestHumanizeDuration(t *testing.T) {
	tests := map[string]string{
		"PT30H15M": "30h 15m",
		"PT2H":     "2h",
		"PT45M":    "45m",
		"P1DT2H5M": "26h 5m",
		"PT0M":     "0m",
		"garbage":  "garbage",
		"":         "",
		"PT":       "PT",
	}
	for in, want := range tests {
		assert.Equal(t, want, HumanizeDuration(in), in)
	}
}
