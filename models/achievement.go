package models

// MetricKey enumerates the profile counters achievements can test. Keeping the
// rule table declarative (metric + threshold, no closures) makes the catalog
// serializable and diffable.
type MetricKey string

const (
	MetricGamesPlayed     MetricKey = "games_played"
	MetricLevel           MetricKey = "level"
	MetricStreak          MetricKey = "streak"
	MetricDailyStreak     MetricKey = "daily_streak"
	MetricChallengesWon   MetricKey = "challenges_won"
	MetricRaffleWins      MetricKey = "raffle_wins"
	MetricThemesUnlocked  MetricKey = "themes_unlocked"
	MetricAvatarsUnlocked MetricKey = "avatars_unlocked"
)

// Achievement is a static, immutable catalog entry. Reward is paid in coins
// exactly once, when the metric first reaches the threshold.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Emoji       string    `json:"emoji"`
	Reward      int64     `json:"reward"`
	Metric      MetricKey `json:"metric"`
	Threshold   int64     `json:"threshold"`
}

// MetricValue evaluates a metric key against a profile.
func (p *UserProfile) MetricValue(key MetricKey) int64 {
	switch key {
	case MetricGamesPlayed:
		return p.TotalGamesPlayed
	case MetricLevel:
		return int64(p.Level)
	case MetricStreak:
		return int64(p.Streak)
	case MetricDailyStreak:
		return int64(p.DailyStreak)
	case MetricChallengesWon:
		return int64(p.DailyChallengesWon)
	case MetricRaffleWins:
		return int64(p.RaffleWins)
	case MetricThemesUnlocked:
		return int64(len(p.UnlockedThemes))
	case MetricAvatarsUnlocked:
		return int64(len(p.UnlockedAvatars))
	}
	return 0
}

// Satisfied reports whether the achievement's predicate holds for p.
func (a Achievement) Satisfied(p *UserProfile) bool {
	return p.MetricValue(a.Metric) >= a.Threshold
}

// AchievementCatalog is the fixed rule table scanned after every profile
// mutation. Unlocks are recorded in UserProfile.UnlockedAchievements, so an
// entry can never be granted twice even if its metric later dips back below
// the threshold.
var AchievementCatalog = []Achievement{
	{
		ID: "first_game", Name: "Warming Up", Emoji: "🧠",
		Description: "Finish your first game",
		Reward:      50, Metric: MetricGamesPlayed, Threshold: 1,
	},
	{
		ID: "games_10", Name: "Regular", Emoji: "🎮",
		Description: "Finish 10 games",
		Reward:      100, Metric: MetricGamesPlayed, Threshold: 10,
	},
	{
		ID: "games_50", Name: "Dedicated", Emoji: "🏋️",
		Description: "Finish 50 games",
		Reward:      250, Metric: MetricGamesPlayed, Threshold: 50,
	},
	{
		ID: "games_200", Name: "Brain Athlete", Emoji: "🏅",
		Description: "Finish 200 games",
		Reward:      1000, Metric: MetricGamesPlayed, Threshold: 200,
	},
	{
		ID: "level_5", Name: "Getting Sharp", Emoji: "⭐",
		Description: "Reach level 5",
		Reward:      200, Metric: MetricLevel, Threshold: 5,
	},
	{
		ID: "level_10", Name: "Quick Thinker", Emoji: "🌟",
		Description: "Reach level 10",
		Reward:      500, Metric: MetricLevel, Threshold: 10,
	},
	{
		ID: "level_25", Name: "Mastermind", Emoji: "👑",
		Description: "Reach level 25",
		Reward:      2000, Metric: MetricLevel, Threshold: 25,
	},
	{
		ID: "streak_3", Name: "On a Roll", Emoji: "🔥",
		Description: "Win on 3 days in a row",
		Reward:      150, Metric: MetricStreak, Threshold: 3,
	},
	{
		ID: "streak_7", Name: "One Whole Week", Emoji: "📅",
		Description: "Win on 7 days in a row",
		Reward:      400, Metric: MetricStreak, Threshold: 7,
	},
	{
		ID: "streak_30", Name: "Unstoppable", Emoji: "🚀",
		Description: "Win on 30 days in a row",
		Reward:      2500, Metric: MetricStreak, Threshold: 30,
	},
	{
		ID: "daily_7", Name: "Creature of Habit", Emoji: "☀️",
		Description: "Claim the daily reward 7 days in a row",
		Reward:      300, Metric: MetricDailyStreak, Threshold: 7,
	},
	{
		ID: "challenge_1", Name: "Word of the Day", Emoji: "🔤",
		Description: "Win your first daily challenge",
		Reward:      100, Metric: MetricChallengesWon, Threshold: 1,
	},
	{
		ID: "challenge_20", Name: "Challenge Hunter", Emoji: "🎯",
		Description: "Win 20 daily challenges",
		Reward:      800, Metric: MetricChallengesWon, Threshold: 20,
	},
	{
		ID: "raffle_1", Name: "Lucky Ticket", Emoji: "🎟️",
		Description: "Win a weekly raffle",
		Reward:      500, Metric: MetricRaffleWins, Threshold: 1,
	},
	{
		ID: "collector", Name: "Collector", Emoji: "🎨",
		Description: "Own 3 themes",
		Reward:      300, Metric: MetricThemesUnlocked, Threshold: 3,
	},
}

// AchievementByID looks up a catalog entry; ok=false for unknown ids.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range AchievementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
