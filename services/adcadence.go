package services

import (
	"time"

	"brain-play-system/models"
)

// ForcedAdInterval is the minimum wall-clock spacing between interstitials.
const ForcedAdInterval = 5 * time.Minute

// AdCadenceController tracks time since the last shown interstitial and forces
// one at the next safe opportunity. It never closes an open modal: when the
// interval elapses while the slot is busy or a game is active, the forced ad
// stays pending and fires before queued events as soon as the slot frees up on
// a menu screen.
type AdCadenceController struct {
	lastAdShownAt time.Time
	pending       bool
}

func NewAdCadenceController(now time.Time) *AdCadenceController {
	return &AdCadenceController{lastAdShownAt: now}
}

// Pending reports whether a forced ad is waiting for a free idle slot.
func (c *AdCadenceController) Pending() bool {
	return c.pending
}

// Tick is the periodic cadence check. Returns true when the forced
// interstitial should be shown right now, in which case the caller claims the
// modal slot. Evaluated before the event queue drain in a tick, so forced ads
// take the idle window over queued popups.
func (c *AdCadenceController) Tick(now time.Time, screen models.Screen, slotFree bool) bool {
	if !c.pending && now.Sub(c.lastAdShownAt) >= ForcedAdInterval {
		c.pending = true
	}
	if c.pending && slotFree && models.IsMenuScreen(screen) {
		c.pending = false
		return true
	}
	return false
}

// AdClosed resets the cadence clock. Closing any ad counts, forced or
// rewarded.
func (c *AdCadenceController) AdClosed(now time.Time) {
	c.lastAdShownAt = now
}
