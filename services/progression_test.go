package services

import (
	"testing"
	"time"

	"brain-play-system/models"
)

func testProfile() models.UserProfile {
	p := models.DefaultProfile()
	return p
}

func newTestEngine() *ProgressionEngine {
	return NewProgressionEngine(NewSeededLeaderboardSynchronizer(7))
}

func TestApplyGameResultLevelRollOver(t *testing.T) {
	engine := newTestEngine()
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	p := testProfile()
	p.Experience = 95
	p.LastPlayedDate = now.AddDate(0, 0, -1)

	events := engine.ApplyGameResult(&p, "memory-match", 20, now)

	if p.Level != 2 {
		t.Fatalf("level = %d, want 2", p.Level)
	}
	if p.Experience != 5 {
		t.Fatalf("experience = %d, want 5", p.Experience)
	}
	// 20 from the score plus the level-2 reward of 100.
	if p.Coins != 120 {
		t.Fatalf("coins = %d, want 120", p.Coins)
	}
	if p.Streak != 1 {
		t.Fatalf("streak = %d, want 1", p.Streak)
	}
	if p.HighScores["memory-match"] != 20 {
		t.Fatalf("high score = %d, want 20", p.HighScores["memory-match"])
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %v", len(events), events)
	}
	if events[0].Kind != models.EventLevelUp || events[0].Level != 2 || events[0].Reward != 100 {
		t.Fatalf("first event = %v, want LEVEL_UP{level=2 reward=100}", events[0])
	}
	if events[1].Kind != models.EventStreak || events[1].Streak != 1 {
		t.Fatalf("second event = %v, want STREAK{1}", events[1])
	}
}

func TestApplyGameResultStreakTransitions(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		lastPlayed time.Time
		streak     int
		wantStreak int
		wantEvent  bool
	}{
		{"first ever win", time.Time{}, 0, 1, true},
		{"consecutive day", now.AddDate(0, 0, -1), 4, 5, true},
		{"across midnight", time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC), 2, 3, true},
		{"same day repeat", now.Add(-3 * time.Hour), 4, 4, false},
		{"missed a day", now.AddDate(0, 0, -3), 9, 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestEngine()
			p := testProfile()
			p.LastPlayedDate = tc.lastPlayed
			p.Streak = tc.streak

			events := engine.ApplyGameResult(&p, "quick-math", 10, now)

			if p.Streak != tc.wantStreak {
				t.Fatalf("streak = %d, want %d", p.Streak, tc.wantStreak)
			}
			var streakEvents int
			for _, ev := range events {
				if ev.Kind == models.EventStreak {
					streakEvents++
					if ev.Streak != tc.wantStreak {
						t.Fatalf("streak event carries %d, want %d", ev.Streak, tc.wantStreak)
					}
				}
			}
			if tc.wantEvent && streakEvents != 1 {
				t.Fatalf("got %d streak events, want 1", streakEvents)
			}
			if !tc.wantEvent && streakEvents != 0 {
				t.Fatalf("got %d streak events, want none", streakEvents)
			}
			if !p.LastPlayedDate.Equal(now) {
				t.Fatalf("lastPlayedDate = %v, want %v", p.LastPlayedDate, now)
			}
		})
	}
}

func TestApplyGameResultLossStampsDateOnly(t *testing.T) {
	engine := newTestEngine()
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	p := testProfile()
	p.Streak = 6
	p.LastPlayedDate = now.AddDate(0, 0, -1)

	events := engine.ApplyGameResult(&p, "quick-math", 0, now)

	if len(events) != 0 {
		t.Fatalf("a loss produced events: %v", events)
	}
	if p.Experience != 0 {
		t.Fatalf("a loss granted experience: %d", p.Experience)
	}
	if p.Streak != 6 {
		t.Fatalf("a loss changed the streak: %d", p.Streak)
	}
	if !p.LastPlayedDate.Equal(now) {
		t.Fatal("a loss must still stamp lastPlayedDate")
	}
	if p.TotalGamesPlayed != 1 {
		t.Fatalf("games played = %d, want 1", p.TotalGamesPlayed)
	}
}

func TestDailyClaimStreakAndCap(t *testing.T) {
	engine := newTestEngine()
	day := func(n int) time.Time {
		return time.Date(2026, 4, n, 8, 0, 0, 0, time.UTC)
	}

	p := testProfile()

	// Nine consecutive days: the bonus grows by 25 per day and caps on day 7.
	wantRewards := []int64{50, 75, 100, 125, 150, 175, 200, 200, 200}
	for i, want := range wantRewards {
		now := day(1 + i)
		if !CanClaimDaily(&p, now) {
			t.Fatalf("day %d: claim should be open", i+1)
		}
		if got := engine.ApplyDailyClaim(&p, now); got != want {
			t.Fatalf("day %d: reward = %d, want %d", i+1, got, want)
		}
		if CanClaimDaily(&p, now) {
			t.Fatalf("day %d: second claim on the same day should be blocked", i+1)
		}
	}
	if p.WeeklyTickets != len(wantRewards) {
		t.Fatalf("tickets = %d, want %d", p.WeeklyTickets, len(wantRewards))
	}

	// Skipping a day resets the daily streak to the base reward.
	if got := engine.ApplyDailyClaim(&p, day(12)); got != 50 {
		t.Fatalf("reward after gap = %d, want 50", got)
	}
	if p.DailyStreak != 1 {
		t.Fatalf("daily streak after gap = %d, want 1", p.DailyStreak)
	}
}

func TestGardenWateringOncePerDay(t *testing.T) {
	engine := newTestEngine()
	now := time.Date(2026, 5, 2, 19, 0, 0, 0, time.UTC)

	p := testProfile()
	p.Experience = 90

	if !CanWaterToday(&p, now) {
		t.Fatal("fresh profile should be able to water")
	}
	events := engine.ApplyGardenWatering(&p, now)

	if p.Level != 2 || p.Experience != 5 {
		t.Fatalf("watering roll-over wrong: level=%d exp=%d", p.Level, p.Experience)
	}
	if len(events) != 1 || events[0].Kind != models.EventLevelUp {
		t.Fatalf("events = %v, want one LEVEL_UP", events)
	}
	if CanWaterToday(&p, now.Add(2*time.Hour)) {
		t.Fatal("second watering on the same day should be blocked")
	}
	if !CanWaterToday(&p, now.AddDate(0, 0, 1)) {
		t.Fatal("watering should reopen the next day")
	}
}

func TestChallengeWinOncePerDay(t *testing.T) {
	engine := newTestEngine()
	now := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)

	p := testProfile()
	if !CanCompleteChallenge(&p, now) {
		t.Fatal("fresh profile should have an open challenge")
	}

	reward := engine.ApplyChallengeWin(&p, now)
	if reward != ChallengeReward || p.Coins != ChallengeReward {
		t.Fatalf("reward = %d, coins = %d, want %d", reward, p.Coins, ChallengeReward)
	}
	if p.DailyChallengesWon != 1 || p.WeeklyTickets != 1 {
		t.Fatalf("counters wrong: won=%d tickets=%d", p.DailyChallengesWon, p.WeeklyTickets)
	}
	if CanCompleteChallenge(&p, now.Add(time.Hour)) {
		t.Fatal("challenge should close for the rest of the day")
	}
	if !CanCompleteChallenge(&p, now.AddDate(0, 0, 1)) {
		t.Fatal("challenge should reopen the next day")
	}
}
