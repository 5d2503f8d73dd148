package services

import (
	"errors"
	"testing"
	"time"

	"brain-play-system/models"
)

func TestForcedAdTakesIdleWindowOverQueuedEvents(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSession(t0)
	s.EnqueueEvents(models.LevelUpEvent(2, 100))

	// The interval has elapsed and an event is queued; the ad wins the window.
	now := t0.Add(ForcedAdInterval + time.Second)
	action := s.Tick(now)
	if action.Kind != "forced_ad" {
		t.Fatalf("tick = %q, want forced_ad", action.Kind)
	}
	if s.ModalOwner() != models.ModalForcedAd {
		t.Fatalf("modal owner = %q, want forced_ad", s.ModalOwner())
	}

	// The queued event waits while the ad holds the slot.
	if again := s.Tick(now.Add(time.Second)); again.Kind != "none" {
		t.Fatalf("tick during ad = %q, want none", again.Kind)
	}

	s.ForcedAdClosed(now.Add(5 * time.Second))
	after := s.Tick(now.Add(6 * time.Second))
	if after.Kind != "present_event" {
		t.Fatalf("tick after ad close = %q, want present_event", after.Kind)
	}
	if after.Event == nil || after.Event.Kind != models.EventLevelUp {
		t.Fatalf("presented event = %v, want the queued LEVEL_UP", after.Event)
	}
}

func TestForcedAdStaysPendingWhileSlotBusy(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSession(t0)

	if err := s.ClaimModal(models.ModalTutorial); err != nil {
		t.Fatalf("ClaimModal: %v", err)
	}

	now := t0.Add(ForcedAdInterval + time.Minute)
	if action := s.Tick(now); action.Kind != "none" {
		t.Fatalf("tick with busy slot = %q, want none", action.Kind)
	}

	s.ReleaseModal(models.ModalTutorial)
	if action := s.Tick(now.Add(time.Second)); action.Kind != "forced_ad" {
		t.Fatalf("tick after release = %q, want the deferred forced ad", action.Kind)
	}
}

func TestForcedAdWaitsForMenuScreen(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSession(t0)
	s.SetScreen(models.ScreenGame, t0)

	now := t0.Add(ForcedAdInterval + time.Minute)
	if action := s.Tick(now); action.Kind != "none" {
		t.Fatalf("an interstitial fired mid-game: %q", action.Kind)
	}

	s.SetScreen(models.ScreenHome, now)
	if action := s.Tick(now.Add(time.Second)); action.Kind != "forced_ad" {
		t.Fatalf("tick back on home = %q, want forced_ad", action.Kind)
	}
}

func TestAdClosedResetsCadenceClock(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSession(t0)

	now := t0.Add(ForcedAdInterval + time.Second)
	if action := s.Tick(now); action.Kind != "forced_ad" {
		t.Fatalf("tick = %q, want forced_ad", action.Kind)
	}
	s.ForcedAdClosed(now)

	// Just under one full interval after the close: nothing fires.
	if action := s.Tick(now.Add(ForcedAdInterval - time.Second)); action.Kind != "none" {
		t.Fatalf("cadence clock not reset, got %q", action.Kind)
	}
	if action := s.Tick(now.Add(ForcedAdInterval + time.Second)); action.Kind != "forced_ad" {
		t.Fatalf("next interval did not fire, got %q", action.Kind)
	}
}

func TestScreenChangeRestartsPresentDelay(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSession(t0)
	s.EnqueueEvents(models.StreakEvent(2))

	s.SetScreen(models.ScreenStore, t0.Add(time.Minute))

	// Just after the navigation the popup must hold back.
	if action := s.Tick(t0.Add(time.Minute + 100*time.Millisecond)); action.Kind != "none" {
		t.Fatalf("popup fired inside the settle delay: %q", action.Kind)
	}
	if action := s.Tick(t0.Add(time.Minute + PresentDelay)); action.Kind != "present_event" {
		t.Fatalf("popup did not fire after the delay: %q", action.Kind)
	}
}

func TestModalSlotMutualExclusion(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSession(t0)

	if err := s.ClaimModal(models.ModalVictory); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if err := s.ClaimModal(models.ModalTutorial); !errors.Is(err, ErrModalSlotBusy) {
		t.Fatalf("second claim err = %v, want ErrModalSlotBusy", err)
	}

	// Releasing with the wrong owner is ignored.
	s.ReleaseModal(models.ModalTutorial)
	if s.ModalOwner() != models.ModalVictory {
		t.Fatalf("wrong-owner release freed the slot: %q", s.ModalOwner())
	}

	s.ReleaseModal(models.ModalVictory)
	if err := s.ClaimModal(models.ModalTutorial); err != nil {
		t.Fatalf("claim after release: %v", err)
	}
}

func TestRewardedGrantConsumedExactlyOnce(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSession(t0)

	token, err := s.RequestRewarded(RewardedUnlockGame, "speed-sort")
	if err != nil {
		t.Fatalf("RequestRewarded: %v", err)
	}
	if s.ModalOwner() != models.ModalRewardedAd {
		t.Fatalf("modal owner = %q, want rewarded_ad", s.ModalOwner())
	}

	// A second rewarded request can't stack on the open ad.
	if _, err := s.RequestRewarded(RewardedGeneric, ""); !errors.Is(err, ErrModalSlotBusy) {
		t.Fatalf("stacked request err = %v, want ErrModalSlotBusy", err)
	}

	grant, err := s.ConsumeRewarded(token, t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("ConsumeRewarded: %v", err)
	}
	if grant.Purpose != RewardedUnlockGame || grant.GameID != "speed-sort" {
		t.Fatalf("grant = %+v", grant)
	}
	if s.ModalOwner() != models.ModalNone {
		t.Fatalf("slot not released after consume: %q", s.ModalOwner())
	}

	if _, err := s.ConsumeRewarded(token, t0.Add(2*time.Minute)); !errors.Is(err, ErrUnknownGrant) {
		t.Fatalf("replayed token err = %v, want ErrUnknownGrant", err)
	}
	if _, err := s.ConsumeRewarded("bogus", t0.Add(2*time.Minute)); !errors.Is(err, ErrUnknownGrant) {
		t.Fatalf("bogus token err = %v, want ErrUnknownGrant", err)
	}
}

func TestRewardedCloseResetsCadenceClock(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSession(t0)

	// Watch a rewarded ad just before the forced interval would elapse.
	closeAt := t0.Add(ForcedAdInterval - 10*time.Second)
	token, err := s.RequestRewarded(RewardedGeneric, "")
	if err != nil {
		t.Fatalf("RequestRewarded: %v", err)
	}
	if _, err := s.ConsumeRewarded(token, closeAt); err != nil {
		t.Fatalf("ConsumeRewarded: %v", err)
	}

	// The original deadline passes quietly; the clock restarted at the close.
	if action := s.Tick(t0.Add(ForcedAdInterval + time.Second)); action.Kind != "none" {
		t.Fatalf("forced ad fired despite recent rewarded view: %q", action.Kind)
	}
	if action := s.Tick(closeAt.Add(ForcedAdInterval + time.Second)); action.Kind != "forced_ad" {
		t.Fatalf("forced ad missing after a full interval: %q", action.Kind)
	}
}

func TestRegistryReturnsSameSessionPerUser(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	reg := NewSessionRegistry()

	a := reg.Get("u1", t0)
	b := reg.Get("u1", t0.Add(time.Hour))
	if a != b {
		t.Fatal("registry created a second session for the same user")
	}
	if reg.Get("u2", t0) == a {
		t.Fatal("registry shared a session across users")
	}
}
