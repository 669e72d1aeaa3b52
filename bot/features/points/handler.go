package points

import (
	"context"

	"bootcamp/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handlePoints(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordUser := common.InvokingUser(i)
	if discordUser == nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := f.userService.GetOrCreateUser(ctx, discordUser.ID, discordUser.Username)
	if err != nil {
		log.Errorf("Error getting user %s: %v", discordUser.ID, err)
		common.RespondWithError(s, i, "Unable to retrieve points. Please try again.")
		return
	}

	breakdown, err := f.auditService.GetBreakdown(ctx, user.UserID)
	if err != nil {
		log.Errorf("Error loading breakdown for user %s: %v", user.UserID, err)
		common.RespondWithError(s, i, "Unable to retrieve points. Please try again.")
		return
	}

	embed := BuildBreakdownEmbed(breakdown, user.Name())
	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Error responding to points command: %v", err)
	}
}
