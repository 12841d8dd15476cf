package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/maevebot/maeve/internal/domain"
	"github.com/maevebot/maeve/internal/render"
	"github.com/maevebot/maeve/internal/services"
	"github.com/maevebot/maeve/internal/tmdb"
)

// Embed accent colors shared across handlers.
const (
	colorSuccess = 0x00FF00
	colorDanger  = 0xFF0000
	colorWarn    = 0xFF6B6B
	colorNeutral = 0x6C757D
	colorCurrent = 0xE23636
)

// Component custom IDs. Navigation IDs carry the target page as a suffix
// (first_0, prev_2, next_3) so the collector can re-render without state.
const (
	idMarkWatched   = "mark_watched"
	idMarkUnwatched = "mark_unwatched"
	idViewList      = "view_list"
	idPageInfo      = "page_info"
	idConfirmReset  = "confirm_reset"
	idCancelReset   = "cancel_reset"
)

// pageFromCustomID extracts the target page from a navigation custom ID.
// The disabled page indicator and non-navigation IDs report ok=false.
func pageFromCustomID(customID string) (int, bool) {
	idx := strings.LastIndexByte(customID, '_')
	if idx < 0 {
		return 0, false
	}
	prefix := customID[:idx]
	if prefix != "first" && prefix != "prev" && prefix != "next" {
		return 0, false
	}
	page, err := strconv.Atoi(customID[idx+1:])
	if err != nil || page < 0 {
		return 0, false
	}
	return page, true
}

// listPageTarget resolves a navigation custom ID against a listing of
// totalItems movies, reporting ok=false for foreign IDs and for targets
// beyond the last page.
func listPageTarget(customID string, totalItems int) (int, bool) {
	page, ok := pageFromCustomID(customID)
	if !ok || page >= render.TotalPages(totalItems, render.PageSize) {
		return 0, false
	}
	return page, true
}

// navigationRow converts renderer controls into a button row. An empty
// control set yields no components.
func navigationRow(controls []render.Control) []discordgo.MessageComponent {
	if len(controls) == 0 {
		return nil
	}
	buttons := make([]discordgo.MessageComponent, 0, len(controls))
	for _, c := range controls {
		b := discordgo.Button{Label: c.Label, Disabled: c.Disabled}
		switch c.Kind {
		case render.ControlFirst:
			b.CustomID = "first_" + strconv.Itoa(c.TargetPage)
			b.Style = discordgo.SecondaryButton
		case render.ControlPrev:
			b.CustomID = "prev_" + strconv.Itoa(c.TargetPage)
			b.Style = discordgo.PrimaryButton
		case render.ControlPageInfo:
			b.CustomID = idPageInfo
			b.Style = discordgo.SecondaryButton
		case render.ControlNext:
			b.CustomID = "next_" + strconv.Itoa(c.TargetPage)
			b.Style = discordgo.PrimaryButton
		}
		buttons = append(buttons, b)
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

// listEmbed renders one page of a franchise listing from a snapshot: the
// page's styled lines plus the franchise-wide progress bar.
func listEmbed(f domain.Franchise, snap services.Snapshot, page int) *discordgo.MessageEmbed {
	pageMovies := render.Page(snap.Movies, render.PageSize, page)

	var desc strings.Builder
	for _, m := range pageMovies {
		current := snap.CurrentID != nil && *snap.CurrentID == m.ID
		desc.WriteString(render.Line(m, snap.WatchedID[m.ID], current))
		desc.WriteByte('\n')
	}

	watched := snap.WatchedCount()
	total := len(snap.Movies)
	percent := render.Percent(watched, total)

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎬 %s Movies - Chronological Order", f.Name),
		Color:       f.Color,
		Description: desc.String(),
		Fields: []*discordgo.MessageEmbedField{{
			Name: "📊 Progress",
			Value: fmt.Sprintf("%d/%d movies watched (%d%%)\n%s",
				watched, total, percent, render.ProgressBar(watched, total, render.BarWidth)),
		}},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d • %d total movies",
				page+1, render.TotalPages(total, render.PageSize), total),
		},
	}
}

// currentMovieEmbed renders the /current response: catalog facts always,
// TMDB enrichment when the fetch succeeded.
func currentMovieEmbed(m *domain.Movie, f domain.Franchise, details *tmdb.Details, watched bool) *discordgo.MessageEmbed {
	color := colorCurrent
	if watched {
		color = colorSuccess
	}
	status := "Not Watched"
	footer := "Mark as watched when you finish watching!"
	if watched {
		status = "Watched"
		footer = "You've watched this movie! ✅"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎬 " + m.Title,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📅 Release Year", Value: strconv.Itoa(m.ReleaseYear), Inline: true},
			{Name: fmt.Sprintf("📍 %s Order", f.Name), Value: "#" + strconv.Itoa(m.SortOrder), Inline: true},
			{Name: "✅ Status", Value: status, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: footer},
	}

	if details != nil {
		if details.Overview != "" {
			embed.Description = details.Overview
		}
		if details.PosterURL != "" {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: details.PosterURL}
		}
		if details.BackdropURL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: details.BackdropURL}
		}
		if details.Rating > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "⭐ Rating",
				Value:  fmt.Sprintf("%.1f/10 (%d votes)", details.Rating, details.VoteCount),
				Inline: true,
			})
		}
		if details.Runtime > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "⏱️ Runtime",
				Value:  fmt.Sprintf("%dh %dm", details.Runtime/60, details.Runtime%60),
				Inline: true,
			})
		}
		if len(details.Genres) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "🎭 Genres",
				Value: strings.Join(details.Genres, ", "),
			})
		}
	} else if m.Description != nil && *m.Description != "" {
		embed.Description = *m.Description
	}

	return embed
}

// currentMovieButtons renders the watched toggle plus the cross-link to the
// movie's franchise listing.
func currentMovieButtons(f domain.Franchise, watched bool) []discordgo.MessageComponent {
	var toggle discordgo.Button
	if watched {
		toggle = discordgo.Button{
			CustomID: idMarkUnwatched,
			Label:    "Mark as Unwatched",
			Style:    discordgo.SecondaryButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
		}
	} else {
		toggle = discordgo.Button{
			CustomID: idMarkWatched,
			Label:    "Mark as Watched",
			Style:    discordgo.SuccessButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
		}
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		toggle,
		discordgo.Button{
			CustomID: idViewList,
			Label:    "View " + f.Name + " List",
			Style:    discordgo.PrimaryButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "📋"},
		},
	}}}
}
