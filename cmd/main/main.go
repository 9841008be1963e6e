package main

import (
	"context"
	"flights-bot/pkg"
	"flights-bot/pkg/amadeus"
	"flights-bot/pkg/config"
	"flights-bot/pkg/handlers"
	"flights-bot/pkg/logging"
	"flights-bot/pkg/metrics"
	"flights-bot/pkg/notifier"
	"flights-bot/pkg/scheduler"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/getsentry/sentry-go"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	err = sentry.Init(sentry.ClientOptions{
		Dsn:           cfg.Sentry.DSN,
		Environment:   cfg.Sentry.Environment,
		EnableTracing: false,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if cfg.Sentry.Production() { // only report events in prod
				return event
			}
			return nil
		},
	})
	if err != nil {
		panic(err)
	}

	defer sentry.Flush(2 * time.Second)

	level, _ := cfg.Level()
	slog.SetDefault(logging.New(os.Stdout, level, false))

	slog.Info("starting the bot...", slog.String("disgo.version", disgo.Version))

	loc, _ := cfg.Flights.Location()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseURL := cfg.Amadeus.Environment.BaseURL()
	searcher := amadeus.New(baseURL, amadeus.NewSearchClient(context.Background(), baseURL, cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret))

	b := &pkg.Bot{}
	h := handlers.NewHandler(b, cfg)

	client, err := disgo.New(cfg.Discord.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds),
			gateway.WithPresenceOpts(gateway.WithWatchingActivity("cheap flights to "+cfg.Flights.Destination))),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds, cache.FlagChannels)),
		bot.WithEventListeners(h))
	if err != nil {
		panic(err)
	}

	defer client.Close(context.TODO())

	b.Notifier = notifier.New(searcher, notifier.NewDiscordChannels(client, cfg.Discord.GuildID), notifier.Config{
		Origin:      cfg.Flights.Origin,
		Destination: cfg.Flights.Destination,
		ChannelName: cfg.Discord.ChannelName,
		Location:    loc,
	})
	b.Scheduler, err = scheduler.NewDaily(loc, cfg.Flights.Hour, cfg.Flights.Minute, func(ctx context.Context) {
		_ = b.Notifier.Run(ctx, notifier.TriggerScheduled)
	})
	if err != nil {
		panic(err)
	}

	var guildIDs []snowflake.ID
	if cfg.Discord.GuildID != 0 {
		guildIDs = append(guildIDs, cfg.Discord.GuildID)
	}
	if err := handler.SyncCommands(client, handlers.Commands, guildIDs); err != nil {
		slog.Error("flights: error while syncing commands", tint.Err(err))
	}

	if err := client.OpenGateway(ctx); err != nil {
		panic(err)
	}

	// channels are resolved from the gateway cache, so runs start only once the gateway is open
	b.Scheduler.Start(ctx)

	eg, egCtx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		eg.Go(func() error {
			return metrics.Serve(egCtx, cfg.MetricsAddr)
		})
	}

	slog.Info("flights bot is now running.",
		slog.String("route", cfg.Flights.Origin+"-"+cfg.Flights.Destination),
		slog.String("channel.name", cfg.Discord.ChannelName))
	<-egCtx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := b.Scheduler.Stop(stopCtx); err != nil {
		slog.Error("flights: error while stopping the scheduler", tint.Err(err))
	}
	if err := eg.Wait(); err != nil {
		slog.Error("flights: error while running the metrics server", tint.Err(err))
	}
	slog.Info("flights bot stopped.")
}
