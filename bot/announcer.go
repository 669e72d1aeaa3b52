package bot

import (
	"context"
	"fmt"

	"bootcamp/bot/common"
	"bootcamp/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// ChannelMessageSender is the part of a Discord session the announcer needs
type ChannelMessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts committed point changes to a Discord channel
type Announcer struct {
	sender    ChannelMessageSender
	channelID string
}

// NewAnnouncer creates an announcer posting to channelID
func NewAnnouncer(sender ChannelMessageSender, channelID string) *Announcer {
	return &Announcer{
		sender:    sender,
		channelID: channelID,
	}
}

// Subscribe registers the announcer for points awarded events
func (a *Announcer) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypePointsAwarded, a.handlePointsAwarded)
}

func (a *Announcer) handlePointsAwarded(_ context.Context, event events.Event) {
	e, ok := event.(events.PointsAwardedEvent)
	if !ok {
		return
	}

	// No-op changes are not worth a message
	if e.RequestedChange == 0 {
		return
	}

	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, BuildAwardEmbed(e)); err != nil {
		log.WithFields(log.Fields{
			"userID":        e.UserID,
			"transactionID": e.TransactionID,
			"error":         err,
		}).Error("Failed to announce points change")
	}
}

// BuildAwardEmbed creates the channel message for a point change
func BuildAwardEmbed(e events.PointsAwardedEvent) *discordgo.MessageEmbed {
	color := common.ColorSuccess
	title := "✨ Points awarded"
	if e.RequestedChange < 0 {
		color = common.ColorDanger
		title = "📉 Points deducted"
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Color:       color,
		Description: fmt.Sprintf("%s **%s** (%s)", common.Mention(e.UserID), common.FormatSignedPoints(e.RequestedChange), e.Source.Description()),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Balance", Value: fmt.Sprintf("%s → %s", common.FormatPoints(e.OldPoints), common.FormatPoints(e.NewPoints)), Inline: true},
		},
	}

	if e.Reason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Reason", Value: e.Reason, Inline: true})
	}

	if e.Clamped() {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Balance floored at zero, %s applied", common.FormatSignedPoints(e.AppliedChange)),
		}
	}

	return embed
}
