package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"flights-bot/pkg/notifier"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/lmittmann/tint"
)

func (h *Handler) HandleFlightsNow(event *handler.CommandEvent) error {
	return h.flightsNow(event.User().ID, func(message discord.MessageCreate) error {
		return event.CreateMessage(message)
	})
}

func (h *Handler) flightsNow(userID snowflake.ID, reply func(discord.MessageCreate) error) error {
	messageCreate := discord.NewMessageCreate().WithEphemeral(true)
	channelName := h.Bot.Notifier.ChannelName()
	channelID, ok := h.Bot.Notifier.Channel()
	if !ok {
		slog.Warn("flights: channel not found for a manual check", slog.String("channel.name", channelName))
		return reply(messageCreate.WithContent(channelNotFoundMessage(channelName)))
	}
	if err := reply(messageCreate.WithContent(checkingMessage(channelID.String()))); err != nil {
		return err
	}
	// the interaction is already acknowledged, so the run outlives the event
	go func() {
		err := h.Bot.Notifier.Run(context.Background(), notifier.TriggerManual)
		if err != nil && !errors.Is(err, notifier.ErrNoOffers) && !errors.Is(err, notifier.ErrChannelNotFound) {
			slog.Error("flights: manual check failed", slog.Any("user.id", userID), tint.Err(err))
		}
	}()
	return nil
}

func (h *Handler) HandleFlightsNext(event *handler.CommandEvent) error {
	next := h.Bot.Scheduler.Next(time.Now())
	return event.CreateMessage(discord.NewMessageCreate().
		WithContent(nextRunMessage(next, h.Config.Flights.Origin, h.Config.Flights.Destination)).
		WithEphemeral(true))
}

func channelNotFoundMessage(channelName string) string {
	return fmt.Sprintf("Channel **#%s** was not found, nothing will be posted.", channelName)
}

func checkingMessage(channelID string) string {
	return fmt.Sprintf("Checking flights, results will be posted in <#%s>.", channelID)
}

func nextRunMessage(next time.Time, origin string, destination string) string {
	unix := next.Unix()
	return fmt.Sprintf("Next check for **%s → %s** is <t:%d:F> (<t:%d:R>).", origin, destination, unix, unix)
}
