package services

import (
	"errors"
	"testing"
	"time"

	"brain-play-system/models"
)

func newTestGameService() *GameService {
	lb := NewSeededLeaderboardSynchronizer(9)
	profiles := NewProfileStore(newMemBlobStore(), lb)
	return NewGameService(
		profiles,
		NewProgressionEngine(lb),
		NewUnlockGate(),
		NewAchievementEvaluator(),
		NewSessionRegistry(),
	)
}

func TestStartGameShowsTutorialOnce(t *testing.T) {
	svc := newTestGameService()
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	result, err := svc.StartGame("u1", "memory-match", now)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if !result.Access.Allowed {
		t.Fatalf("access = %+v, want allowed", result.Access)
	}
	if result.Tutorial == "" {
		t.Fatal("first start should carry the tutorial text")
	}

	session := svc.Sessions.Get("u1", now)
	if session.ModalOwner() != models.ModalTutorial {
		t.Fatalf("modal owner = %q, want tutorial", session.ModalOwner())
	}
	if session.Screen() != models.ScreenGame {
		t.Fatalf("screen = %q, want game", session.Screen())
	}
	session.ReleaseModal(models.ModalTutorial)

	again, err := svc.StartGame("u1", "memory-match", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second StartGame: %v", err)
	}
	if again.Tutorial != "" {
		t.Fatal("tutorial repeated on the second start")
	}
}

func TestStartGameBlockedByGate(t *testing.T) {
	svc := newTestGameService()
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	result, err := svc.StartGame("u1", "trivia-rush", now)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if result.Access.Allowed || result.Access.Reason != BlockLevel {
		t.Fatalf("access = %+v, want a LEVEL block", result.Access)
	}

	if _, err := svc.StartGame("u1", "no-such-game", now); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("err = %v, want ErrUnknownGame", err)
	}
}

func TestFinishGameQueuesEventsInPresentationOrder(t *testing.T) {
	svc := newTestGameService()
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	// Level 1 with 95 experience: the win rolls the level over, the first
	// completed game unlocks first_game, and the fresh streak starts at 1.
	if _, err := svc.Profiles.Mutate("u1", func(p *models.UserProfile) {
		p.Experience = 95
	}); err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	profile, events, err := svc.FinishGame("u1", "memory-match", 20, now)
	if err != nil {
		t.Fatalf("FinishGame: %v", err)
	}

	wantKinds := []models.EventKind{models.EventLevelUp, models.EventAchievement, models.EventStreak}
	if len(events) != len(wantKinds) {
		t.Fatalf("got %d events, want %d: %v", len(events), len(wantKinds), events)
	}
	for i, want := range wantKinds {
		if events[i].Kind != want {
			t.Fatalf("events[%d] = %s, want %s", i, events[i].Kind, want)
		}
	}

	// 20 score + 100 level reward + 50 first_game reward.
	if profile.Coins != 170 {
		t.Fatalf("coins = %d, want 170", profile.Coins)
	}
	if profile.Level != 2 || profile.Experience != 5 {
		t.Fatalf("level/exp = %d/%d, want 2/5", profile.Level, profile.Experience)
	}

	session := svc.Sessions.Get("u1", now)
	if session.Screen() != models.ScreenHome {
		t.Fatalf("screen after finish = %q, want home", session.Screen())
	}

	// The queue drains in the same order, one dismissal at a time.
	for i, want := range wantKinds {
		action := session.Tick(now.Add(PresentDelay + time.Duration(i)*time.Second))
		if action.Kind != "present_event" || action.Event.Kind != want {
			t.Fatalf("drain %d = %+v, want %s", i, action, want)
		}
		session.DismissEvent()
	}
}

func TestFinishGameClampsNegativeScore(t *testing.T) {
	svc := newTestGameService()
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	profile, events, err := svc.FinishGame("u1", "quick-math", -40, now)
	if err != nil {
		t.Fatalf("FinishGame: %v", err)
	}
	if profile.Coins != 50 {
		// Only the first_game achievement reward; a clamped score pays nothing.
		t.Fatalf("coins = %d, want 50", profile.Coins)
	}
	for _, ev := range events {
		if ev.Kind == models.EventLevelUp || ev.Kind == models.EventStreak {
			t.Fatalf("clamped score produced a win event: %v", ev)
		}
	}
}

func TestPurchaseGameRejectedWithoutMutation(t *testing.T) {
	svc := newTestGameService()

	// One coin short of the pattern-recall price.
	if _, err := svc.Profiles.Mutate("u1", func(p *models.UserProfile) {
		p.Coins = 499
	}); err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	if _, err := svc.PurchaseGame("u1", "pattern-recall"); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("err = %v, want ErrInsufficientCoins", err)
	}

	p, err := svc.Profiles.Load("u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Coins != 499 {
		t.Fatalf("rejected purchase changed coins: %d", p.Coins)
	}
	if len(p.UnlockedGames) != 0 {
		t.Fatalf("rejected purchase unlocked: %v", p.UnlockedGames)
	}
}

func TestPurchaseGameUnlocksAndPersists(t *testing.T) {
	svc := newTestGameService()
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	if _, err := svc.Profiles.Mutate("u1", func(p *models.UserProfile) {
		p.Coins = 600
	}); err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	p, err := svc.PurchaseGame("u1", "pattern-recall")
	if err != nil {
		t.Fatalf("PurchaseGame: %v", err)
	}
	if p.Coins != 100 || !models.ContainsID(p.UnlockedGames, "pattern-recall") {
		t.Fatalf("purchase result wrong: coins=%d unlocked=%v", p.Coins, p.UnlockedGames)
	}

	result, err := svc.StartGame("u1", "pattern-recall", now)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if !result.Access.Allowed {
		t.Fatalf("purchased game still blocked: %+v", result.Access)
	}
}

func TestDailyActionsRejectRepeats(t *testing.T) {
	svc := newTestGameService()
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	if _, _, err := svc.WaterGarden("u1", now); err != nil {
		t.Fatalf("WaterGarden: %v", err)
	}
	if _, _, err := svc.WaterGarden("u1", now.Add(time.Hour)); !errors.Is(err, ErrAlreadyDone) {
		t.Fatalf("repeat watering err = %v, want ErrAlreadyDone", err)
	}

	if _, reward, err := svc.ClaimDaily("u1", now); err != nil || reward != DailyRewardBase {
		t.Fatalf("ClaimDaily = %d, %v; want %d, nil", reward, err, DailyRewardBase)
	}
	if _, _, err := svc.ClaimDaily("u1", now.Add(time.Hour)); !errors.Is(err, ErrAlreadyDone) {
		t.Fatalf("repeat claim err = %v, want ErrAlreadyDone", err)
	}

	if _, reward, err := svc.CompleteChallenge("u1", now); err != nil || reward != ChallengeReward {
		t.Fatalf("CompleteChallenge = %d, %v; want %d, nil", reward, err, ChallengeReward)
	}
	if _, _, err := svc.CompleteChallenge("u1", now.Add(time.Hour)); !errors.Is(err, ErrAlreadyDone) {
		t.Fatalf("repeat challenge err = %v, want ErrAlreadyDone", err)
	}
}
