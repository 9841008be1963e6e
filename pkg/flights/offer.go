package flights

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// MaxOffers is how many offers a single run requests and shows.
	MaxOffers = 10

	searchLinkURL = "https://www.google.com/travel/flights?q=%s&curr=USD"
)

type Query struct {
	Origin      string
	Destination string
	Date        string
	Adults      int
	Max         int
}

func NewQuery(origin string, destination string, date time.Time) Query {
	return Query{
		Origin:      origin,
		Destination: destination,
		Date:        date.Format(DateLayout),
		Adults:      1,
		Max:         MaxOffers,
	}
}

type Segment struct {
	From         string
	To           string
	DepartureAt  time.Time
	ArrivalAt    time.Time
	CarrierCode  string
	FlightNumber string
}

func (s Segment) Flight() string {
	return s.CarrierCode + s.FlightNumber
}

type Offer struct {
	ID          string
	Price       float64
	Currency    string
	DepartureAt time.Time
	ArrivalAt   time.Time
	Duration    string
	Segments    []Segment
	Link        string
}

// Carriers returns the distinct carrier codes in the order they are flown.
func (o Offer) Carriers() []string {
	var carriers []string
	for _, segment := range o.Segments {
		if segment.CarrierCode == "" || slices.Contains(carriers, segment.CarrierCode) {
			continue
		}
		carriers = append(carriers, segment.CarrierCode)
	}
	return carriers
}

func (o Offer) FlightNumbers() []string {
	numbers := make([]string, 0, len(o.Segments))
	for _, segment := range o.Segments {
		numbers = append(numbers, segment.Flight())
	}
	return numbers
}

// Rank returns the cheapest offers in ascending price order, at most limit of them.
// Offers with equal prices keep their upstream order.
func Rank(offers []Offer, limit int) []Offer {
	ranked := slices.Clone(offers)
	slices.SortStableFunc(ranked, func(a, b Offer) int {
		return cmp.Compare(a.Price, b.Price)
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func SearchLink(origin string, destination string, date string) string {
	q := fmt.Sprintf("Flights from %s to %s on %s one way", origin, destination, date)
	return fmt.Sprintf(searchLinkURL, url.QueryEscape(q))
}
