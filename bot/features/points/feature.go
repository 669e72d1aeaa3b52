package points

import (
	"bootcamp/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	userService  service.UserService
	auditService service.AuditService
}

func New(userService service.UserService, auditService service.AuditService) *Feature {
	return &Feature{
		userService:  userService,
		auditService: auditService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handlePoints(s, i)
}
