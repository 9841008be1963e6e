package amadeus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"flights-bot/pkg/flights"

	"github.com/disgoorg/json"
	"github.com/lmittmann/tint"
)

var (
	decodingErr = errors.New("couldn't decode flight offers response")
)

const (
	tokenPath  = "/v1/security/oauth2/token"
	offersPath = "/v2/shopping/flight-offers"

	currencyCode = "USD"

	localTimeLayout = "2006-01-02T15:04:05"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) SearchOffers(ctx context.Context, q flights.Query) ([]flights.Offer, error) {
	rs, err := c.SearchOffersRaw(ctx, q)
	if err != nil {
		slog.Error("amadeus: error while running a flight offers request", slog.String("route", q.Origin+"-"+q.Destination), slog.String("date", q.Date), tint.Err(err))
		return nil, err
	}
	defer rs.Body.Close()
	body, err := io.ReadAll(rs.Body)
	if err != nil {
		slog.Error("amadeus: error while reading a flight offers response", slog.Int("status.code", rs.StatusCode), tint.Err(err))
		return nil, err
	}
	if rs.StatusCode != http.StatusOK {
		rErr := newResponseError(rs.StatusCode, body)
		slog.Warn("amadeus: received an unexpected code from a flight offers response",
			slog.Int("status.code", rs.StatusCode),
			slog.String("route", q.Origin+"-"+q.Destination),
			slog.String("date", q.Date),
			tint.Err(rErr))
		return nil, rErr
	}
	var response *SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		slog.Error("amadeus: error while unmarshalling a flight offers response", slog.Int("status.code", rs.StatusCode), tint.Err(err))
		return nil, err
	}
	if response == nil {
		return nil, decodingErr
	}
	return response.ToOffers(q), nil
}

func (c *Client) SearchOffersRaw(ctx context.Context, q flights.Query) (*http.Response, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.Date)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("max", strconv.Itoa(q.Max))
	params.Set("currencyCode", currencyCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+offersPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.amadeus+json")
	return c.httpClient.Do(req)
}

type SearchResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Price struct {
			Currency   string `json:"currency"`
			Total      string `json:"total"`
			GrandTotal string `json:"grandTotal"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []segment `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
}

type segment struct {
	Departure   endpoint `json:"departure"`
	Arrival     endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
}

type endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// ToOffers maps the first itinerary of every offer. Offers without a usable price or segments are skipped.
func (r *SearchResponse) ToOffers(q flights.Query) []flights.Offer {
	link := flights.SearchLink(q.Origin, q.Destination, q.Date)
	offers := make([]flights.Offer, 0, len(r.Data))
	for _, data := range r.Data {
		if len(data.Itineraries) == 0 || len(data.Itineraries[0].Segments) == 0 {
			slog.Debug("amadeus: skipping offer without segments", slog.String("offer.id", data.ID))
			continue
		}
		total := data.Price.Total
		if total == "" {
			total = data.Price.GrandTotal
		}
		price, err := strconv.ParseFloat(total, 64)
		if err != nil {
			slog.Debug("amadeus: skipping offer with invalid price", slog.String("offer.id", data.ID), slog.String("price", total))
			continue
		}
		segments, err := toSegments(data.Itineraries[0].Segments)
		if err != nil {
			slog.Debug("amadeus: skipping offer with invalid segment time", slog.String("offer.id", data.ID), tint.Err(err))
			continue
		}
		currency := data.Price.Currency
		if currency == "" {
			currency = currencyCode
		}
		offers = append(offers, flights.Offer{
			ID:          data.ID,
			Price:       price,
			Currency:    currency,
			DepartureAt: segments[0].DepartureAt,
			ArrivalAt:   segments[len(segments)-1].ArrivalAt,
			Duration:    data.Itineraries[0].Duration,
			Segments:    segments,
			Link:        link,
		})
	}
	return offers
}

func toSegments(raw []segment) ([]flights.Segment, error) {
	segments := make([]flights.Segment, 0, len(raw))
	for _, s := range raw {
		departureAt, err := parseTime(s.Departure.At)
		if err != nil {
			return nil, err
		}
		arrivalAt, err := parseTime(s.Arrival.At)
		if err != nil {
			return nil, err
		}
		segments = append(segments, flights.Segment{
			From:         s.Departure.IATACode,
			To:           s.Arrival.IATACode,
			DepartureAt:  departureAt,
			ArrivalAt:    arrivalAt,
			CarrierCode:  s.CarrierCode,
			FlightNumber: s.Number,
		})
	}
	return segments, nil
}

// parseTime reads airport local times, which the API sends without an offset.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(localTimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", s)
	}
	return t, nil
}

type ResponseError struct {
	StatusCode int
	Code       int
	Title      string
	Detail     string
}

func (e *ResponseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("amadeus: %d %s (code %d): %s", e.StatusCode, e.Title, e.Code, e.Detail)
	}
	return fmt.Sprintf("amadeus: %d %s (code %d)", e.StatusCode, e.Title, e.Code)
}

func newResponseError(status int, body []byte) *ResponseError {
	rErr := &ResponseError{StatusCode: status, Title: http.StatusText(status)}
	var document struct {
		Errors []struct {
			Code   int    `json:"code"`
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &document); err != nil || len(document.Errors) == 0 {
		return rErr
	}
	first := document.Errors[0]
	rErr.Code = first.Code
	if first.Title != "" {
		rErr.Title = first.Title
	}
	rErr.Detail = first.Detail
	return rErr
}
