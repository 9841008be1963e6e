package pkg

import (
	"context"

	"flights-bot/pkg/notifier"
	"flights-bot/pkg/scheduler"

	"github.com/disgoorg/snowflake/v2"
)

// Notifier is the part of *notifier.Notifier the command handlers use.
type Notifier interface {
	ChannelName() string
	Channel() (snowflake.ID, bool)
	Run(ctx context.Context, trigger notifier.Trigger) error
}

type Bot struct {
	Notifier  Notifier
	Scheduler *scheduler.Scheduler
}
