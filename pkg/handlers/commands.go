package handlers

import (
	"flights-bot/pkg"
	"flights-bot/pkg/config"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/lmittmann/tint"
)

var Commands = []discord.ApplicationCommandCreate{
	discord.SlashCommandCreate{
		Name:        "flights",
		Description: "Cheap flight notifications",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "now",
				Description: "Check flights now and post them to the notification channel",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "next",
				Description: "Show when the next daily check runs",
			},
		},
	},
}

func NewHandler(b *pkg.Bot, c *config.Config) *Handler {
	mux := handler.New()
	mux.Error(func(e *handler.InteractionEvent, err error) {
		i := e.Interaction.(discord.ApplicationCommandInteraction)
		slog.Error("flights: error while handling a command", slog.String("command.name", i.Data.CommandName()), tint.Err(err))
		_ = e.Respond(discord.InteractionResponseTypeCreateMessage, discord.NewMessageCreate().
			WithContentf("There was an error while handling the command: %v", err).
			WithEphemeral(true))
	})
	handlers := &Handler{
		Bot:    b,
		Config: c,
		Router: mux,
	}
	handlers.Group(func(r handler.Router) {
		r.Route("/flights", func(r handler.Router) {
			r.Command("/now", handlers.HandleFlightsNow)
			r.Command("/next", handlers.HandleFlightsNext)
		})
	})
	return handlers
}

type Handler struct {
	Bot    *pkg.Bot
	Config *config.Config
	handler.Router
}
