package points

import (
	"fmt"
	"strings"
	"time"

	"bootcamp/bot/common"
	"bootcamp/models"

	"github.com/bwmarrin/discordgo"
)

// recentEntries is how many ledger entries the breakdown embed lists
const recentEntries = 5

// BuildBreakdownEmbed creates the points breakdown embed
func BuildBreakdownEmbed(breakdown *models.PointsBreakdown, displayName string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📊 Points for %s", displayName),
		Color:       common.ColorPrimary,
		Description: fmt.Sprintf("**%s points**", common.FormatPoints(breakdown.TotalPoints)),
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Profile", Value: common.FormatPoints(breakdown.ProfileCompletionPoints), Inline: true},
			{Name: "Submissions", Value: common.FormatPoints(breakdown.SubmissionPoints), Inline: true},
			{Name: "Events", Value: common.FormatPoints(breakdown.EventAttendancePoints), Inline: true},
			{Name: "Adjustments", Value: common.FormatPoints(breakdown.AdminAdjustmentPoints), Inline: true},
			{Name: "Bonus", Value: common.FormatPoints(breakdown.BonusPoints), Inline: true},
		},
	}

	if breakdown.ClampedPoints != 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Absorbed by zero floor",
			Value:  common.FormatPoints(breakdown.ClampedPoints),
			Inline: true,
		})
	}

	if len(breakdown.Transactions) > 0 {
		var lines []string
		for i, t := range breakdown.Transactions {
			if i == recentEntries {
				break
			}
			lines = append(lines, fmt.Sprintf("%s `%s` %s %s",
				entryMarker(t),
				common.FormatSignedPoints(t.PointsChange),
				t.Source.Description(),
				common.FormatDiscordTimestamp(t.CreatedAt, "R")))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Recent",
			Value: strings.Join(lines, "\n"),
		})
	}

	return embed
}

func entryMarker(t *models.PointTransaction) string {
	switch {
	case t.IsAward():
		return "🟢"
	case t.IsDeduction():
		return "🔴"
	default:
		return "⚪"
	}
}
