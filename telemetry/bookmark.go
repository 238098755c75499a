package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/lightcycle/components"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHeadOn       BookmarkType = "head_on"
	BookmarkPileup       BookmarkType = "pileup"
	BookmarkLastStanding BookmarkType = "last_standing"
	BookmarkMarathon     BookmarkType = "marathon"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `json:"type"`
	Tick        int32        `json:"tick"`
	Description string       `json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a match.
type BookmarkDetector struct {
	marathonTicks int32

	lastAlive      int
	lastStandingOK bool
	marathonOK     bool
}

// NewBookmarkDetector creates a detector. A match that reaches
// marathonTicks triggers a marathon bookmark once; 0 disables it.
func NewBookmarkDetector(marathonTicks int32) *BookmarkDetector {
	return &BookmarkDetector{
		marathonTicks: marathonTicks,
		lastAlive:     -1,
	}
}

// Check analyzes one tick and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(rec TickRecord, deaths []DeathEvent) []Bookmark {
	var bookmarks []Bookmark

	headOn := 0
	for _, d := range deaths {
		if d.DeathCause() == components.CauseHeadOn {
			headOn++
		}
	}
	if headOn > 0 {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkHeadOn,
			Tick:        rec.Tick,
			Description: fmt.Sprintf("%d agents met head-on", headOn),
		})
	}

	if len(deaths) > 1 {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkPileup,
			Tick:        rec.Tick,
			Description: fmt.Sprintf("%d agents died in the same tick", len(deaths)),
		})
	}

	// Fires once, on the tick the field first narrows to a single rider.
	if !bd.lastStandingOK && bd.lastAlive > 1 && rec.Alive == 1 {
		bd.lastStandingOK = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkLastStanding,
			Tick:        rec.Tick,
			Description: "one agent left standing",
		})
	}

	if !bd.marathonOK && bd.marathonTicks > 0 && rec.Tick >= bd.marathonTicks {
		bd.marathonOK = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkMarathon,
			Tick:        rec.Tick,
			Description: fmt.Sprintf("match reached %d ticks with %d alive", rec.Tick, rec.Alive),
		})
	}

	bd.lastAlive = rec.Alive
	return bookmarks
}
