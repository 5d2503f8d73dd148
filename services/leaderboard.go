package services

import (
	"math/rand/v2"
	"sort"

	"brain-play-system/models"

	"github.com/google/uuid"
)

// MinLeaderboardSize guards against corrupt or legacy blobs: a loaded board
// with fewer entries than this is thrown away and reseeded.
const MinLeaderboardSize = 50

var fantasyNicknames = []string{
	"Shadowmind", "Neuroblade", "PuzzleWraith", "Synapse", "Cortexia",
	"Mindforge", "Brainstorm", "Lobe_Lord", "ThinkTank", "Cerebella",
	"Axon_Hunter", "GreyMatter", "Riddlemancer", "Logik", "Memoria",
	"QuickWit", "Enigmatic", "Psyche", "NovaThought", "Dendrite",
}

var firstNames = []string{
	"Alex", "Maria", "John", "Sofia", "Lucas", "Emma", "Daniel", "Olivia",
	"Marco", "Yuki", "Omar", "Elena", "Felix", "Nina", "Carlos", "Amara",
	"Leo", "Zara", "Ivan", "Chloe", "Hugo", "Priya", "Noah", "Lena",
	"Mateo", "Ava", "Tariq", "Julia", "Kenji", "Rosa",
}

var lastNames = []string{
	"Smith", "Garcia", "Kim", "Silva", "Novak", "Tanaka", "Brown", "Costa",
	"Müller", "Rossi", "Khan", "Petrov", "Dubois", "Santos", "Nakamura",
	"Jensen", "Okafor", "Lindgren", "Moreau", "Kowalski", "Haddad", "Ortega",
	"Berg", "Fischer", "Nguyen", "Romero", "Ahmed", "Walker", "Sato", "Duarte",
}

// LeaderboardSynchronizer keeps the profile's synthetic leaderboard consistent
// with the live profile and breathes life into the bot entries.
type LeaderboardSynchronizer struct {
	rand *rand.Rand
}

func NewLeaderboardSynchronizer() *LeaderboardSynchronizer {
	return &LeaderboardSynchronizer{}
}

// NewSeededLeaderboardSynchronizer pins the random source, for tests.
func NewSeededLeaderboardSynchronizer(seed uint64) *LeaderboardSynchronizer {
	return &LeaderboardSynchronizer{rand: rand.New(rand.NewPCG(seed, seed))}
}

func (s *LeaderboardSynchronizer) intN(n int) int {
	if s.rand != nil {
		return s.rand.IntN(n)
	}
	return rand.IntN(n)
}

func (s *LeaderboardSynchronizer) float64n() float64 {
	if s.rand != nil {
		return s.rand.Float64()
	}
	return rand.Float64()
}

// botName draws from the weighted name tables: 15% fantasy nickname, 85%
// composed first+last name.
func (s *LeaderboardSynchronizer) botName() string {
	if s.float64n() < 0.15 {
		return fantasyNicknames[s.intN(len(fantasyNicknames))]
	}
	return firstNames[s.intN(len(firstNames))] + " " + lastNames[s.intN(len(lastNames))]
}

func (s *LeaderboardSynchronizer) botAvatar() string {
	avatars := models.AvatarCatalog
	return avatars[s.intN(len(avatars))].ID
}

type botTier struct {
	count                int
	minCoins, maxCoins   int64
	minStreak, maxStreak int
}

// Population tiers: elite, veteran, regular, novice.
var botTiers = []botTier{
	{count: 50, minCoins: 10000, maxCoins: 100000, minStreak: 50, maxStreak: 250},
	{count: 300, minCoins: 1000, maxCoins: 10000, minStreak: 20, maxStreak: 120},
	{count: 600, minCoins: 100, maxCoins: 1000, minStreak: 5, maxStreak: 35},
	{count: 300, minCoins: 0, maxCoins: 100, minStreak: 0, maxStreak: 5},
}

// Seed generates the fixed-size synthetic bot population. The user's own row
// is not included here; Reconcile creates it on the next pass.
func (s *LeaderboardSynchronizer) Seed(userCoins int64) []models.LeaderboardEntry {
	var entries []models.LeaderboardEntry
	for _, tier := range botTiers {
		for i := 0; i < tier.count; i++ {
			entries = append(entries, models.LeaderboardEntry{
				ID:     uuid.NewString(),
				Name:   s.botName(),
				Avatar: s.botAvatar(),
				Coins:  tier.minCoins + int64(s.intN(int(tier.maxCoins-tier.minCoins))),
				Streak: tier.minStreak + s.intN(tier.maxStreak-tier.minStreak),
			})
		}
	}
	return entries
}

// Reconcile ensures exactly one entry has IsUser=true and overwrites that
// entry's name/coins/avatar/streak from the profile. Bot entries are left
// untouched. Runs after every profile mutation.
func (s *LeaderboardSynchronizer) Reconcile(p *models.UserProfile) {
	userIdx := -1
	kept := p.Leaderboard[:0]
	for _, e := range p.Leaderboard {
		if e.IsUser {
			if userIdx >= 0 {
				continue // drop duplicate user rows
			}
			userIdx = len(kept)
		}
		kept = append(kept, e)
	}
	p.Leaderboard = kept

	if userIdx < 0 {
		p.Leaderboard = append(p.Leaderboard, models.LeaderboardEntry{
			ID:     uuid.NewString(),
			IsUser: true,
		})
		userIdx = len(p.Leaderboard) - 1
	}

	row := &p.Leaderboard[userIdx]
	row.Name = p.UserName
	row.Coins = p.Coins
	row.Avatar = p.CurrentAvatar
	row.Streak = p.Streak
}

// Tick perturbs bot entries: each non-user row has a 0.3 chance of a coin
// delta in [-5,+14], floored at 0. Called on demand to keep the ranking
// looking alive, not on a timer.
func (s *LeaderboardSynchronizer) Tick(p *models.UserProfile) {
	for i := range p.Leaderboard {
		if p.Leaderboard[i].IsUser {
			continue
		}
		if s.float64n() < 0.3 {
			p.Leaderboard[i].Coins += int64(s.intN(20)) - 5
			if p.Leaderboard[i].Coins < 0 {
				p.Leaderboard[i].Coins = 0
			}
		}
	}
}

// RewardBots grants each bot a bounded random coin gain proportional to the
// player's score, so rankings keep moving after every finished game. Cosmetic
// only; the only invariant is that coins stay non-negative.
func (s *LeaderboardSynchronizer) RewardBots(p *models.UserProfile, score int64) {
	bound := int(float64(score) * 1.1)
	if bound < 5 {
		bound = 5
	}
	for i := range p.Leaderboard {
		if p.Leaderboard[i].IsUser {
			continue
		}
		p.Leaderboard[i].Coins += int64(s.intN(bound))
	}
}

// Ranked returns the leaderboard sorted by coins descending, without mutating
// the stored order.
func Ranked(p *models.UserProfile) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(p.Leaderboard))
	copy(out, p.Leaderboard)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Coins > out[j].Coins
	})
	return out
}
