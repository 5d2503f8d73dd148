package services

import (
	"time"

	"brain-play-system/models"
)

// PresentDelay is the pause between a presentation becoming eligible and the
// popup actually appearing, so a popup never flashes in the same instant as a
// screen transition.
const PresentDelay = 500 * time.Millisecond

// EventSequencer drains queued celebration events one at a time: strict FIFO,
// only on an idle menu screen, never overlapping another modal. Two states:
// idle (no popup) and presenting (exactly one popup, waiting for dismissal).
type EventSequencer struct {
	queue      []models.GameEvent
	presenting *models.GameEvent
}

func NewEventSequencer() *EventSequencer {
	return &EventSequencer{}
}

// Enqueue appends events in the order they were generated during a mutation.
func (s *EventSequencer) Enqueue(events ...models.GameEvent) {
	s.queue = append(s.queue, events...)
}

// Pending returns the number of queued, not-yet-presented events.
func (s *EventSequencer) Pending() int {
	return len(s.queue)
}

// Presenting returns the currently shown event, or nil when idle.
func (s *EventSequencer) Presenting() *models.GameEvent {
	return s.presenting
}

// MaybePresent fires the idle→presenting transition when (a) the active screen
// is a menu screen, (b) the modal slot is free, (c) the queue is non-empty and
// (d) the eligibility delay since the last screen change has passed. On firing
// it dequeues the head event and returns it with its celebration effects.
func (s *EventSequencer) MaybePresent(now time.Time, screen models.Screen, slotFree bool, screenSince time.Time) (*models.GameEvent, []models.Effect) {
	if s.presenting != nil || !slotFree || len(s.queue) == 0 {
		return nil, nil
	}
	if !models.IsMenuScreen(screen) {
		return nil, nil
	}
	if now.Sub(screenSince) < PresentDelay {
		return nil, nil
	}

	head := s.queue[0]
	s.queue = s.queue[1:]
	s.presenting = &head
	return &head, models.CelebrationEffects(head)
}

// Dismiss completes the presenting→idle transition on explicit user dismissal.
// The next queued event waits for the next idle opportunity.
func (s *EventSequencer) Dismiss() {
	s.presenting = nil
}
