package leaderboard

import (
	"fmt"
	"strings"

	"bootcamp/bot/common"
	"bootcamp/models"

	"github.com/bwmarrin/discordgo"
)

var medals = []string{"🥇", "🥈", "🥉"}

// BuildLeaderboardEmbed creates the ranked points embed
func BuildLeaderboardEmbed(users []*models.User) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Leaderboard",
		Color: common.ColorPrimary,
	}

	// Sorted by points, so if the leader has none nobody does
	if len(users) == 0 || !users[0].HasPoints() {
		embed.Description = "No one has earned points yet."
		return embed
	}

	var lines []string
	for idx, user := range users {
		rank := fmt.Sprintf("`#%d`", idx+1)
		if idx < len(medals) {
			rank = medals[idx]
		}
		lines = append(lines, fmt.Sprintf("%s %s **%s**", rank, user.Name(), common.FormatPoints(user.Points)))
	}
	embed.Description = strings.Join(lines, "\n")

	return embed
}
