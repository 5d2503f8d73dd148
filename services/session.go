package services

import (
	"errors"
	"sync"
	"time"

	"brain-play-system/models"

	"github.com/google/uuid"
)

// RewardedPurpose names what a rewarded-ad completion grants.
type RewardedPurpose string

const (
	RewardedGeneric    RewardedPurpose = "generic"
	RewardedUnlockGame RewardedPurpose = "unlock_game"
	RewardedBonusCoins RewardedPurpose = "bonus_coins"
)

// RewardedGrant is one in-flight rewarded-ad request. The grant fires exactly
// once, on the close signal from the ad collaborator; there is no timeout.
type RewardedGrant struct {
	Token    string
	Purpose  RewardedPurpose
	GameID   string
	Consumed bool
}

var (
	ErrModalSlotBusy = errors.New("modal slot is busy")
	ErrUnknownGrant  = errors.New("unknown or already consumed grant token")
)

// TickAction is the outcome of one scheduler tick for a session.
type TickAction struct {
	Kind    string            `json:"kind"` // none | forced_ad | present_event
	Event   *models.GameEvent `json:"event,omitempty"`
	Effects []models.Effect   `json:"effects,omitempty"`
}

// Session holds the transient per-user UI state the engine needs: active
// screen, the single modal slot, the celebration queue and the ad cadence
// clock. All transitions for one session run under its lock, which is the
// server-side equivalent of the client's single-threaded event loop.
type Session struct {
	mu sync.Mutex

	screen      models.Screen
	screenSince time.Time
	modalOwner  models.ModalOwner

	sequencer *EventSequencer
	cadence   *AdCadenceController
	grants    map[string]*RewardedGrant
}

func newSession(now time.Time) *Session {
	return &Session{
		screen:      models.ScreenHome,
		screenSince: now,
		sequencer:   NewEventSequencer(),
		cadence:     NewAdCadenceController(now),
		grants:      map[string]*RewardedGrant{},
	}
}

// SetScreen records a navigation. Changing screens restarts the presentation
// eligibility delay.
func (s *Session) SetScreen(screen models.Screen, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if screen != s.screen {
		s.screen = screen
		s.screenSince = now
	}
}

func (s *Session) Screen() models.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// ClaimModal acquires the single modal slot for a client-driven modal
// (tutorial, victory screen, unlock prompt). First come, first served.
func (s *Session) ClaimModal(owner models.ModalOwner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modalOwner != models.ModalNone {
		return ErrModalSlotBusy
	}
	s.modalOwner = owner
	return nil
}

// ReleaseModal frees the slot if owner currently holds it. Releasing a slot
// someone else holds is ignored rather than treated as an error.
func (s *Session) ReleaseModal(owner models.ModalOwner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modalOwner == owner {
		s.modalOwner = models.ModalNone
	}
}

func (s *Session) ModalOwner() models.ModalOwner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modalOwner
}

// EnqueueEvents feeds celebration events from a profile mutation into the
// queue, preserving generation order.
func (s *Session) EnqueueEvents(events ...models.GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequencer.Enqueue(events...)
}

// Tick runs one scheduler tick: the forced-ad check first, then the queue
// drain, so both never fire on the same idle window and a pending forced ad is
// never starved by queued popups.
func (s *Session) Tick(now time.Time) TickAction {
	s.mu.Lock()
	defer s.mu.Unlock()

	slotFree := s.modalOwner == models.ModalNone

	if s.cadence.Tick(now, s.screen, slotFree) {
		s.modalOwner = models.ModalForcedAd
		return TickAction{Kind: "forced_ad"}
	}

	if event, effects := s.sequencer.MaybePresent(now, s.screen, slotFree, s.screenSince); event != nil {
		s.modalOwner = models.ModalEventPopup
		return TickAction{Kind: "present_event", Event: event, Effects: effects}
	}

	return TickAction{Kind: "none"}
}

// DismissEvent handles the user closing the celebration popup.
func (s *Session) DismissEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequencer.Dismiss()
	if s.modalOwner == models.ModalEventPopup {
		s.modalOwner = models.ModalNone
	}
}

// ForcedAdClosed handles the close signal of a forced interstitial and resets
// the cadence clock.
func (s *Session) ForcedAdClosed(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cadence.AdClosed(now)
	if s.modalOwner == models.ModalForcedAd {
		s.modalOwner = models.ModalNone
	}
}

// RequestRewarded claims the modal slot for an on-demand rewarded ad and
// returns the grant token the client redeems on close.
func (s *Session) RequestRewarded(purpose RewardedPurpose, gameID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modalOwner != models.ModalNone {
		return "", ErrModalSlotBusy
	}
	s.modalOwner = models.ModalRewardedAd
	token := uuid.NewString()
	s.grants[token] = &RewardedGrant{Token: token, Purpose: purpose, GameID: gameID}
	return token, nil
}

// ConsumeRewarded redeems a grant token exactly once, releases the slot and
// resets the cadence clock (closing any ad counts).
func (s *Session) ConsumeRewarded(token string, now time.Time) (RewardedGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	grant, ok := s.grants[token]
	if !ok || grant.Consumed {
		return RewardedGrant{}, ErrUnknownGrant
	}
	grant.Consumed = true
	s.cadence.AdClosed(now)
	if s.modalOwner == models.ModalRewardedAd {
		s.modalOwner = models.ModalNone
	}
	return *grant, nil
}

// SessionRegistry hands out the in-memory session for each user id, creating
// it on first touch. Sessions are not persisted; a restart simply starts
// everyone idle on the home screen.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: map[string]*Session{}}
}

func (r *SessionRegistry) Get(userID string, now time.Time) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		s = newSession(now)
		r.sessions[userID] = s
	}
	return s
}
