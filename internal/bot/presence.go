package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/maevebot/maeve/internal/config"
)

// activityTypes maps config names to gateway activity types.
var activityTypes = map[string]discordgo.ActivityType{
	"PLAYING":   discordgo.ActivityTypeGame,
	"WATCHING":  discordgo.ActivityTypeWatching,
	"LISTENING": discordgo.ActivityTypeListening,
	"COMPETING": discordgo.ActivityTypeCompeting,
	"STREAMING": discordgo.ActivityTypeStreaming,
}

// SetPresence applies the configured status and activity to the session.
// Config normalization already replaced unrecognized values with defaults.
func SetPresence(s *discordgo.Session, p config.PresenceConfig) error {
	at, ok := activityTypes[p.ActivityType]
	if !ok {
		at = discordgo.ActivityTypeWatching
	}
	return s.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: p.Status,
		Activities: []*discordgo.Activity{{
			Name: p.ActivityName,
			Type: at,
		}},
	})
}
