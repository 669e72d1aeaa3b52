package leaderboard

import (
	"strings"
	"testing"

	"bootcamp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLeaderboardEmbed(t *testing.T) {
	t.Run("empty leaderboard", func(t *testing.T) {
		embed := BuildLeaderboardEmbed(nil)
		assert.Equal(t, "No one has earned points yet.", embed.Description)
	})

	t.Run("nobody has points yet", func(t *testing.T) {
		embed := BuildLeaderboardEmbed([]*models.User{{UserID: "1"}, {UserID: "2"}})
		assert.Equal(t, "No one has earned points yet.", embed.Description)
	})

	t.Run("ranks users in order", func(t *testing.T) {
		users := []*models.User{
			{UserID: "1", DisplayName: "Ada", Points: 1200},
			{UserID: "2", DisplayName: "Grace", Points: 300},
			{UserID: "3", Points: 40},
			{UserID: "4", DisplayName: "Linus", Points: 0},
		}

		embed := BuildLeaderboardEmbed(users)

		lines := strings.Split(embed.Description, "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "🥇 Ada **1,200**", lines[0])
		assert.Equal(t, "🥈 Grace **300**", lines[1])
		assert.Equal(t, "🥉 3 **40**", lines[2])
		assert.Equal(t, "`#4` Linus **0**", lines[3])
	})
}
