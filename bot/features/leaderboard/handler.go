package leaderboard

import (
	"context"

	"bootcamp/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	limit := 0
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "limit" {
			limit = int(opt.IntValue())
		}
	}

	users, err := f.userService.GetLeaderboard(ctx, limit)
	if err != nil {
		log.Errorf("Error loading leaderboard: %v", err)
		common.RespondWithError(s, i, "Unable to load the leaderboard. Please try again.")
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildLeaderboardEmbed(users), false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}
