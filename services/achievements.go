package services

import (
	"log"

	"brain-play-system/models"
)

// AchievementEvaluator scans the static rule table against the profile after
// every mutation. Unlocks are recorded in the profile's set, so evaluation is
// idempotent and each reward is granted exactly once.
type AchievementEvaluator struct{}

func NewAchievementEvaluator() *AchievementEvaluator {
	return &AchievementEvaluator{}
}

// Evaluate unlocks every not-yet-unlocked achievement whose threshold is now
// met, credits the summed rewards in one pass and returns the newly unlocked
// entries in catalog order (one sequencer event each).
func (e *AchievementEvaluator) Evaluate(p *models.UserProfile) []models.Achievement {
	var unlocked []models.Achievement
	for _, a := range models.AchievementCatalog {
		if models.ContainsID(p.UnlockedAchievements, a.ID) {
			continue
		}
		if !a.Satisfied(p) {
			continue
		}
		p.UnlockedAchievements = append(p.UnlockedAchievements, a.ID)
		p.Coins += a.Reward
		unlocked = append(unlocked, a)
		log.Printf("🎖️ Achievement unlocked: %s (+%d coins)", a.ID, a.Reward)
	}
	return unlocked
}
