package services

import (
	"log"
	"time"

	"brain-play-system/models"
)

const (
	// Experience is capped per level; each win is a fixed increment. The
	// level-up pass still loops so the roll-over stays correct for any
	// increment.
	ExperiencePerLevel   = 100
	WinExperience        = 10
	WateringExperience   = 15
	LevelRewardPerLevel  = 50
	DailyRewardBase      = 50
	DailyRewardStep      = 25
	DailyRewardMaxStreak = 7
	ChallengeReward      = 100
)

// ProgressionEngine applies game results to the profile under the fixed
// arithmetic rules and produces celebration events in the order the checks
// run: level-ups first, then the streak event. Achievement events are appended
// by the evaluator afterwards.
type ProgressionEngine struct {
	Leaderboard *LeaderboardSynchronizer
}

func NewProgressionEngine(lb *LeaderboardSynchronizer) *ProgressionEngine {
	return &ProgressionEngine{Leaderboard: lb}
}

// addExperience accumulates experience and rolls levels over, emitting one
// LEVEL_UP event per level crossed. The level reward is level * 50 coins.
func addExperience(p *models.UserProfile, amount int) []models.GameEvent {
	var events []models.GameEvent
	p.Experience += amount
	for p.Experience >= ExperiencePerLevel {
		p.Experience -= ExperiencePerLevel
		p.Level++
		reward := int64(p.Level) * LevelRewardPerLevel
		p.Coins += reward
		events = append(events, models.LevelUpEvent(p.Level, reward))
		log.Printf("🎮 Level up: now level %d (+%d coins)", p.Level, reward)
	}
	return events
}

// ApplyGameResult applies a finished game's score to the profile. Every call
// represents a completed game, win (score>0) or lose (score==0); score is
// never negative.
//
// Rule order: high score, coins, experience/level, streak, bookkeeping, bot
// rewards. The streak day difference is computed against the last completion
// of any game, winning or not; lastPlayedDate is stamped on every call.
func (e *ProgressionEngine) ApplyGameResult(p *models.UserProfile, gameID string, score int64, now time.Time) []models.GameEvent {
	var events []models.GameEvent

	if score > p.HighScores[gameID] {
		p.HighScores[gameID] = score
	}

	p.Coins += score

	if score > 0 {
		events = append(events, addExperience(p, WinExperience)...)

		if !p.LastPlayedDate.IsZero() {
			switch days := models.CalendarDaysBetween(p.LastPlayedDate, now); {
			case days == 1:
				p.Streak++
				events = append(events, models.StreakEvent(p.Streak))
			case days > 1:
				p.Streak = 1
				events = append(events, models.StreakEvent(1))
			}
			// Same calendar day: streak unchanged, no event.
		} else {
			p.Streak = 1
			events = append(events, models.StreakEvent(1))
		}
	}

	p.LastPlayedDate = now
	p.TotalGamesPlayed++

	e.Leaderboard.RewardBots(p, score)
	return events
}

// CanWaterToday reports whether the garden watering bonus is still available
// for the current calendar day.
func CanWaterToday(p *models.UserProfile, now time.Time) bool {
	return p.LastWateredDate == nil || !models.SameCalendarDay(*p.LastWateredDate, now)
}

// ApplyGardenWatering grants the once-per-day watering experience, following
// the same level roll-over as a game win. Callers gate on CanWaterToday.
func (e *ProgressionEngine) ApplyGardenWatering(p *models.UserProfile, now time.Time) []models.GameEvent {
	events := addExperience(p, WateringExperience)
	t := now
	p.LastWateredDate = &t
	return events
}

// CanClaimDaily reports whether the daily login reward is still unclaimed for
// the current calendar day.
func CanClaimDaily(p *models.UserProfile, now time.Time) bool {
	return p.LastDailyClaim == nil || !models.SameCalendarDay(*p.LastDailyClaim, now)
}

// ApplyDailyClaim credits the daily login reward. Claiming on consecutive
// calendar days grows the bonus up to a cap; a missed day resets the daily
// streak. Every claim also grants one raffle ticket for the weekly draw.
func (e *ProgressionEngine) ApplyDailyClaim(p *models.UserProfile, now time.Time) int64 {
	if p.LastDailyClaim != nil && models.CalendarDaysBetween(*p.LastDailyClaim, now) == 1 {
		p.DailyStreak++
	} else {
		p.DailyStreak = 1
	}

	step := p.DailyStreak
	if step > DailyRewardMaxStreak {
		step = DailyRewardMaxStreak
	}
	reward := int64(DailyRewardBase + (step-1)*DailyRewardStep)

	p.Coins += reward
	p.WeeklyTickets++
	t := now
	p.LastDailyClaim = &t
	return reward
}

// CanCompleteChallenge reports whether today's daily challenge is still open.
func CanCompleteChallenge(p *models.UserProfile, now time.Time) bool {
	return p.DailyChallengeLastCompleted == nil || !models.SameCalendarDay(*p.DailyChallengeLastCompleted, now)
}

// ApplyChallengeWin records a daily-challenge victory: fixed coin reward plus
// one raffle ticket, once per calendar day.
func (e *ProgressionEngine) ApplyChallengeWin(p *models.UserProfile, now time.Time) int64 {
	p.Coins += ChallengeReward
	p.DailyChallengesWon++
	p.WeeklyTickets++
	t := now
	p.DailyChallengeLastCompleted = &t
	return ChallengeReward
}
