// Package render holds the pure formatting logic behind the franchise
// listings: pagination arithmetic, per-movie line styling, the progress
// bar, and the navigation-control set. Nothing here touches Discord or the
// database, which keeps the whole package trivially testable.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/maevebot/maeve/internal/domain"
)

// PageSize is the number of movies per listing page.
const PageSize = 10

// BarWidth is the progress bar width in segments.
const BarWidth = 20

// Page returns the 0-based page of items. An out-of-range page yields an
// empty slice; navigation controls are derived from the valid range, so
// handlers never request one.
func Page[T any](items []T, pageSize, page int) []T {
	if pageSize <= 0 || page < 0 {
		return nil
	}
	start := page * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns how many pages of pageSize it takes to hold n items.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Line formats one listing row: chronological number, struck-through title
// with a check when watched, a current-movie marker, and the release year.
func Line(m domain.Movie, watched, current bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%d.** ", m.SortOrder)
	if watched {
		fmt.Fprintf(&b, "~~%s~~ ✅", m.Title)
	} else {
		b.WriteString(m.Title)
	}
	if current {
		b.WriteString(" 🎯 *(Current)*")
	}
	fmt.Fprintf(&b, " *(%d)*", m.ReleaseYear)
	return b.String()
}

// Percent returns watched out of total as a rounded percentage, 0 when the
// catalog is empty.
func Percent(watched, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(watched) / float64(total)))
}

// ProgressBar renders a width-segment bar plus percentage for watched out
// of total movies. A zero total reads as 0% rather than dividing by zero.
func ProgressBar(watched, total, width int) string {
	if width <= 0 {
		width = BarWidth
	}
	filled := 0
	if total > 0 {
		filled = width * watched / total
	}
	percent := Percent(watched, total)
	return fmt.Sprintf("%s%s %d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		percent)
}

// ControlKind identifies one navigation control of a paginated listing.
type ControlKind int

// Navigation control kinds, in row order.
const (
	ControlFirst ControlKind = iota
	ControlPrev
	ControlPageInfo
	ControlNext
)

// Control is one navigation element. TargetPage is the page the control
// jumps to; it is meaningless for the disabled page indicator.
type Control struct {
	Kind       ControlKind
	TargetPage int
	Label      string
	Disabled   bool
}

// Controls computes the navigation row for a page of a listing. A listing
// that fits on one page gets no controls at all. "First" is emitted
// whenever "Prev" is, even on page 1 where both land on page 0; the jump
// to the start stays one click regardless of distance.
func Controls(page, totalItems, pageSize int) []Control {
	totalPages := TotalPages(totalItems, pageSize)
	if totalPages <= 1 {
		return nil
	}

	var out []Control
	if page > 0 {
		out = append(out,
			Control{Kind: ControlFirst, TargetPage: 0, Label: "⏮️"},
			Control{Kind: ControlPrev, TargetPage: page - 1, Label: "◀️"},
		)
	}
	out = append(out, Control{
		Kind:     ControlPageInfo,
		Label:    fmt.Sprintf("%d/%d", page+1, totalPages),
		Disabled: true,
	})
	if page < totalPages-1 {
		out = append(out, Control{Kind: ControlNext, TargetPage: page + 1, Label: "▶️"})
	}
	return out
}
