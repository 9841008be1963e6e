package amadeus

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	tokenTimeout  = 10 * time.Second
	searchTimeout = 60 * time.Second // flight offers searches are slow

	// the self-service test environment allows 10 transactions per second
	requestsPerSecond = 10
)

// NewSearchClient returns a client that authenticates with the client credentials grant
// and throttles outgoing requests. ctx is used for token refreshes and must outlive the client.
func NewSearchClient(ctx context.Context, baseURL string, clientID string, clientSecret string) *http.Client {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
		Timeout: tokenTimeout,
	})
	client := cfg.Client(ctx)
	client.Timeout = searchTimeout
	client.Transport = &limitedTripper{
		tripper: client.Transport,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
	return client
}

type limitedTripper struct {
	tripper http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.tripper.RoundTrip(req)
}
