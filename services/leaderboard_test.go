package services

import (
	"strings"
	"testing"

	"brain-play-system/models"
)

func TestSeedPopulation(t *testing.T) {
	lb := NewSeededLeaderboardSynchronizer(1)
	entries := lb.Seed(0)

	if len(entries) != 1250 {
		t.Fatalf("population = %d, want 1250", len(entries))
	}

	elite := 0
	for _, e := range entries {
		if e.IsUser {
			t.Fatal("Seed must not create the user row")
		}
		if e.Coins < 0 {
			t.Fatalf("negative coins in seed: %+v", e)
		}
		if e.ID == "" || e.Name == "" || e.Avatar == "" {
			t.Fatalf("incomplete entry: %+v", e)
		}
		if e.Coins >= 10000 {
			elite++
		}
	}
	// The top tier is exactly 50 entries; every other tier stays below 10000.
	if elite != 50 {
		t.Fatalf("elite tier size = %d, want 50", elite)
	}
}

func TestBotNameWeighting(t *testing.T) {
	lb := NewSeededLeaderboardSynchronizer(2)

	fantasy := 0
	const draws = 10000
	for i := 0; i < draws; i++ {
		// Composed names are always "First Last"; fantasy nicknames never
		// contain a space.
		if !strings.Contains(lb.botName(), " ") {
			fantasy++
		}
	}
	ratio := float64(fantasy) / draws
	if ratio < 0.11 || ratio > 0.19 {
		t.Fatalf("fantasy name ratio = %.3f, want about 0.15", ratio)
	}
}

func TestReconcileCollapsesDuplicateUserRows(t *testing.T) {
	lb := NewSeededLeaderboardSynchronizer(3)

	p := models.DefaultProfile()
	p.UserName = "Grace"
	p.Coins = 340
	p.Streak = 2
	p.Leaderboard = []models.LeaderboardEntry{
		{ID: "bot-1", Name: "Alex Smith", Coins: 10},
		{ID: "dup-1", Name: "stale", IsUser: true},
		{ID: "bot-2", Name: "Maria Kim", Coins: 99},
		{ID: "dup-2", Name: "staler", IsUser: true},
	}

	lb.Reconcile(&p)

	if len(p.Leaderboard) != 3 {
		t.Fatalf("board size = %d, want 3 (two bots + one user row)", len(p.Leaderboard))
	}
	var user *models.LeaderboardEntry
	for i := range p.Leaderboard {
		if p.Leaderboard[i].IsUser {
			if user != nil {
				t.Fatal("duplicate user rows survived reconcile")
			}
			user = &p.Leaderboard[i]
		}
	}
	if user == nil {
		t.Fatal("no user row after reconcile")
	}
	if user.Name != "Grace" || user.Coins != 340 || user.Streak != 2 || user.Avatar != models.DefaultAvatarID {
		t.Fatalf("user row not mirrored: %+v", *user)
	}
}

func TestReconcileCreatesMissingUserRow(t *testing.T) {
	lb := NewSeededLeaderboardSynchronizer(4)

	p := models.DefaultProfile()
	p.Coins = 55
	p.Leaderboard = lb.Seed(0)
	before := len(p.Leaderboard)

	lb.Reconcile(&p)

	if len(p.Leaderboard) != before+1 {
		t.Fatalf("board size = %d, want %d", len(p.Leaderboard), before+1)
	}
	last := p.Leaderboard[len(p.Leaderboard)-1]
	if !last.IsUser || last.Coins != 55 {
		t.Fatalf("appended row = %+v, want the user row with 55 coins", last)
	}
}

func TestTickNeverTouchesUserRowAndFloorsAtZero(t *testing.T) {
	lb := NewSeededLeaderboardSynchronizer(5)

	p := models.DefaultProfile()
	p.Leaderboard = []models.LeaderboardEntry{
		{ID: "user", IsUser: true, Coins: 1234},
		{ID: "broke-bot", Coins: 0},
		{ID: "bot", Coins: 3},
	}

	for i := 0; i < 200; i++ {
		lb.Tick(&p)
		for _, e := range p.Leaderboard {
			if e.IsUser && e.Coins != 1234 {
				t.Fatalf("tick changed the user row: %+v", e)
			}
			if e.Coins < 0 {
				t.Fatalf("coins went negative: %+v", e)
			}
		}
	}
}

func TestRewardBotsSkipsUserRow(t *testing.T) {
	lb := NewSeededLeaderboardSynchronizer(6)

	p := models.DefaultProfile()
	p.Leaderboard = []models.LeaderboardEntry{
		{ID: "user", IsUser: true, Coins: 500},
		{ID: "bot-1", Coins: 10},
		{ID: "bot-2", Coins: 20},
	}

	lb.RewardBots(&p, 100)

	for _, e := range p.Leaderboard {
		if e.IsUser && e.Coins != 500 {
			t.Fatalf("bot reward touched the user row: %+v", e)
		}
		if e.Coins < 0 {
			t.Fatalf("coins went negative: %+v", e)
		}
	}
}

func TestRankedSortsWithoutMutating(t *testing.T) {
	p := models.DefaultProfile()
	p.Leaderboard = []models.LeaderboardEntry{
		{ID: "a", Coins: 5},
		{ID: "b", Coins: 50},
		{ID: "c", Coins: 20},
	}

	ranked := Ranked(&p)

	wantOrder := []string{"b", "c", "a"}
	for i, id := range wantOrder {
		if ranked[i].ID != id {
			t.Fatalf("ranked[%d] = %s, want %s", i, ranked[i].ID, id)
		}
	}
	if p.Leaderboard[0].ID != "a" {
		t.Fatal("Ranked mutated the stored order")
	}
}
