package models

import (
	"time"
)

// Default cosmetics every profile owns. They can never be removed or sold.
const (
	DefaultThemeID  = "classic"
	DefaultAvatarID = "fox"
)

const DefaultUserName = "Player"

// UserProfile is the single durable per-user record. It is stored as one JSON
// blob (read whole on load, rewritten whole on every mutation); there is no
// per-field persistence. All mutation goes through services.ProfileStore.
type UserProfile struct {
	// Identity
	UserName string `json:"user_name"`

	// Economy & progression
	Coins      int64 `json:"coins"`      // never negative
	Level      int   `json:"level"`      // starts at 1
	Experience int   `json:"experience"` // always in [0,100)

	// Activity
	TotalGamesPlayed int64     `json:"total_games_played"`
	LastPlayedDate   time.Time `json:"last_played_date"`
	Streak           int       `json:"streak"`

	// Unlock sets (kept unique; default theme/avatar always present)
	TutorialsSeen        []string `json:"tutorials_seen"`
	UnlockedThemes       []string `json:"unlocked_themes"`
	UnlockedAvatars      []string `json:"unlocked_avatars"`
	UnlockedGames        []string `json:"unlocked_games"`
	UnlockedAchievements []string `json:"unlocked_achievements"`

	// Cosmetic selection (must be members of the unlock sets above)
	CurrentTheme  string `json:"current_theme"`
	CurrentAvatar string `json:"current_avatar"`

	// Per-game bests
	HighScores map[string]int64 `json:"high_scores"`

	// Settings
	SoundEnabled         bool   `json:"sound_enabled"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	Language             string `json:"language"` // BCP 47 tag, e.g. "en"

	// Daily systems
	LastDailyClaim              *time.Time `json:"last_daily_claim,omitempty"`
	DailyStreak                 int        `json:"daily_streak"`
	DailyChallengeLastCompleted *time.Time `json:"daily_challenge_last_completed,omitempty"`
	DailyChallengesWon          int        `json:"daily_challenges_won"`
	LastWateredDate             *time.Time `json:"last_watered_date,omitempty"`

	// Social
	Leaderboard []LeaderboardEntry `json:"leaderboard"`

	// Misc counters
	HasRatedApp    bool       `json:"has_rated_app"`
	WeeklyTickets  int        `json:"weekly_tickets"`
	RaffleWins     int        `json:"raffle_wins"`
	NextRaffleDate *time.Time `json:"next_raffle_date,omitempty"`
}

// LeaderboardEntry is one row of the synthetic leaderboard carried inside the
// profile blob. Exactly one entry has IsUser=true; it mirrors the profile's own
// name/coins/avatar/streak and is overwritten on every reconcile.
type LeaderboardEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Coins  int64  `json:"coins"`
	Avatar string `json:"avatar"`
	Streak int    `json:"streak"`
	IsUser bool   `json:"is_user"`
}

// DefaultProfile returns the record created on first launch. The leaderboard is
// left empty here; the store reseeds any board shorter than the minimum.
func DefaultProfile() UserProfile {
	return UserProfile{
		UserName:             DefaultUserName,
		Coins:                0,
		Level:                1,
		Experience:           0,
		TutorialsSeen:        []string{},
		UnlockedThemes:       []string{DefaultThemeID},
		UnlockedAvatars:      []string{DefaultAvatarID},
		UnlockedGames:        []string{},
		UnlockedAchievements: []string{},
		CurrentTheme:         DefaultThemeID,
		CurrentAvatar:        DefaultAvatarID,
		HighScores:           map[string]int64{},
		SoundEnabled:         true,
		NotificationsEnabled: true,
		Language:             "en",
		Leaderboard:          []LeaderboardEntry{},
	}
}

// Normalize repairs invariants after a load/merge: sets must contain the
// defaults, selections must be members of their sets, numeric fields must stay
// in range. Defensive defaulting, never an error.
func (p *UserProfile) Normalize() {
	if p.UserName == "" {
		p.UserName = DefaultUserName
	}
	if p.Coins < 0 {
		p.Coins = 0
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Experience < 0 || p.Experience >= 100 {
		p.Experience = 0
	}
	p.UnlockedThemes = AppendUnique(p.UnlockedThemes, DefaultThemeID)
	p.UnlockedAvatars = AppendUnique(p.UnlockedAvatars, DefaultAvatarID)
	if !ContainsID(p.UnlockedThemes, p.CurrentTheme) {
		p.CurrentTheme = DefaultThemeID
	}
	if !ContainsID(p.UnlockedAvatars, p.CurrentAvatar) {
		p.CurrentAvatar = DefaultAvatarID
	}
	if p.HighScores == nil {
		p.HighScores = map[string]int64{}
	}
	if p.TutorialsSeen == nil {
		p.TutorialsSeen = []string{}
	}
	if p.UnlockedGames == nil {
		p.UnlockedGames = []string{}
	}
	if p.UnlockedAchievements == nil {
		p.UnlockedAchievements = []string{}
	}
	if p.Leaderboard == nil {
		p.Leaderboard = []LeaderboardEntry{}
	}
}

// ContainsID reports whether id is present in the set slice.
func ContainsID(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// AppendUnique adds id to the set slice if not already present.
func AppendUnique(set []string, id string) []string {
	if ContainsID(set, id) {
		return set
	}
	return append(set, id)
}

// SameCalendarDay reports whether a and b fall on the same calendar date.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CalendarDaysBetween returns the midnight-aligned day difference to - from.
// Two timestamps one minute apart across midnight are one day apart; 23 hours
// apart on the same date are zero days apart.
func CalendarDaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
