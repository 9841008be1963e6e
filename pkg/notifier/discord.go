package notifier

import (
	"context"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// DiscordChannels resolves channels from the gateway cache and posts through the REST API.
type DiscordChannels struct {
	client  *bot.Client
	guildID snowflake.ID
}

// NewDiscordChannels restricts lookups to guildID unless it is zero.
func NewDiscordChannels(client *bot.Client, guildID snowflake.ID) *DiscordChannels {
	return &DiscordChannels{
		client:  client,
		guildID: guildID,
	}
}

// ChannelByName returns the text or announcement channel with the given name.
// Without a guild restriction, the lowest channel id among all matches wins.
func (c *DiscordChannels) ChannelByName(name string) (snowflake.ID, bool) {
	var found snowflake.ID
	for channel := range c.client.Caches.Channels() {
		if c.guildID != 0 && channel.GuildID() != c.guildID {
			continue
		}
		if !postable(channel.Type()) || channel.Name() != name {
			continue
		}
		if found == 0 || channel.ID() < found {
			found = channel.ID()
		}
	}
	return found, found != 0
}

func postable(channelType discord.ChannelType) bool {
	return channelType == discord.ChannelTypeGuildText || channelType == discord.ChannelTypeGuildNews
}

func (c *DiscordChannels) Send(ctx context.Context, channelID snowflake.ID, message discord.MessageCreate) error {
	_, err := c.client.Rest.CreateMessage(channelID, message, rest.WithCtx(ctx))
	return err
}
