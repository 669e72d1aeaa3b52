package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var minLeaderboardSize = float64(1)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "points",
			Description: "Show your points and where they came from",
		},
		{
			Name:        "leaderboard",
			Description: "Show the top students by points",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "How many students to show",
					Required:    false,
					MinValue:    &minLeaderboardSize,
					MaxValue:    25,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
