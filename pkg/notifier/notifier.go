package notifier

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"flights-bot/pkg/flights"
	"flights-bot/pkg/metrics"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

const FailureNotice = "❌ Could not fetch flights right now."

var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrNoOffers        = errors.New("no flight offers")
)

type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

type Searcher interface {
	SearchOffers(ctx context.Context, q flights.Query) ([]flights.Offer, error)
}

type Channels interface {
	ChannelByName(name string) (snowflake.ID, bool)
	Send(ctx context.Context, channelID snowflake.ID, message discord.MessageCreate) error
}

type Config struct {
	Origin      string
	Destination string
	ChannelName string
	Location    *time.Location
}

type Notifier struct {
	searcher Searcher
	channels Channels
	config   Config
	now      func() time.Time
}

func New(searcher Searcher, channels Channels, config Config) *Notifier {
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &Notifier{
		searcher: searcher,
		channels: channels,
		config:   config,
		now:      time.Now,
	}
}

func (n *Notifier) ChannelName() string {
	return n.config.ChannelName
}

// Channel resolves the target channel by name.
func (n *Notifier) Channel() (snowflake.ID, bool) {
	return n.channels.ChannelByName(n.config.ChannelName)
}

// Query is the search for the current date in the configured timezone.
func (n *Notifier) Query() flights.Query {
	return flights.NewQuery(n.config.Origin, n.config.Destination, n.now().In(n.config.Location))
}

// Fetch returns the cheapest offers for q in ascending price order.
// A failed search is reported as no offers; the searcher logs the cause.
func (n *Notifier) Fetch(ctx context.Context, q flights.Query) []flights.Offer {
	offers, err := n.searcher.SearchOffers(ctx, q)
	if err != nil {
		slog.DebugContext(ctx, "flights: search failed",
			slog.String("route", q.Origin+"-"+q.Destination),
			slog.String("date", q.Date),
			tint.Err(err))
		return nil
	}
	return flights.Rank(offers, flights.MaxOffers)
}

// Run posts today's cheapest offers, or the failure notice when there are none, to the configured channel.
// Nothing is sent when the channel cannot be found.
func (n *Notifier) Run(ctx context.Context, trigger Trigger) error {
	logger := slog.With(slog.String("run.id", uuid.NewString()), slog.String("trigger", string(trigger)))
	metrics.Runs.WithLabelValues(string(trigger)).Inc()

	channelID, ok := n.Channel()
	if !ok {
		logger.Warn("flights: channel not found", slog.String("channel.name", n.config.ChannelName))
		metrics.Failures.WithLabelValues("channel").Inc()
		return ErrChannelNotFound
	}

	q := n.Query()
	offers := n.Fetch(ctx, q)

	var message discord.MessageCreate
	if len(offers) == 0 {
		message = discord.NewMessageCreate().WithContent(FailureNotice)
	} else {
		message = discord.NewMessageCreate().WithEmbeds(BuildEmbed(q, offers))
	}
	if err := n.channels.Send(ctx, channelID, message); err != nil {
		logger.Error("flights: error while sending a message", slog.Any("channel.id", channelID), tint.Err(err))
		metrics.Failures.WithLabelValues("send").Inc()
		return err
	}
	if len(offers) == 0 {
		logger.Info("flights: posted failure notice", slog.Any("channel.id", channelID), slog.String("date", q.Date))
		metrics.Failures.WithLabelValues("search").Inc()
		return ErrNoOffers
	}

	logger.Info("flights: posted offers", slog.Any("channel.id", channelID), slog.String("date", q.Date), slog.Int("count", len(offers)))
	metrics.OffersPosted.Add(float64(len(offers)))
	metrics.LastSuccess.SetToCurrentTime()
	return nil
}
