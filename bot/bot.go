package bot

import (
	"fmt"

	"bootcamp/bot/features/leaderboard"
	"bootcamp/bot/features/points"
	"bootcamp/events"
	"bootcamp/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token     string
	ChannelID string // Channel for point change announcements; empty disables them
}

type Bot struct {
	config             Config
	session            *discordgo.Session
	pointsFeature      *points.Feature
	leaderboardFeature *leaderboard.Feature
}

func New(config Config, userService service.UserService, auditService service.AuditService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:             config,
		session:            dg,
		pointsFeature:      points.New(userService, auditService),
		leaderboardFeature: leaderboard.New(userService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	if config.ChannelID != "" {
		NewAnnouncer(dg, config.ChannelID).Subscribe(eventBus)
		log.WithField("channelID", config.ChannelID).Info("Point change announcements enabled")
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "points":
		b.pointsFeature.HandleCommand(s, i)
	case "leaderboard":
		b.leaderboardFeature.HandleCommand(s, i)
	}
}
