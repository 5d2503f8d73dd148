package services

import (
	"errors"
	"time"

	"brain-play-system/models"
)

var ErrUnknownGame = errors.New("unknown game id")

// GameService orchestrates the start/finish flows: gate checks before a game,
// progression + achievement evaluation + event sequencing after one.
type GameService struct {
	Profiles     *ProfileStore
	Engine       *ProgressionEngine
	Gate         *UnlockGate
	Achievements *AchievementEvaluator
	Sessions     *SessionRegistry
}

func NewGameService(profiles *ProfileStore, engine *ProgressionEngine, gate *UnlockGate, achievements *AchievementEvaluator, sessions *SessionRegistry) *GameService {
	return &GameService{
		Profiles:     profiles,
		Engine:       engine,
		Gate:         gate,
		Achievements: achievements,
		Sessions:     sessions,
	}
}

// StartResult is what the client needs to route into a game: either the block
// reason, or clearance plus the one-time tutorial when it hasn't been seen.
type StartResult struct {
	Access   Access `json:"access"`
	Tutorial string `json:"tutorial,omitempty"`
}

// StartGame runs the gate check. When the game is playable and its tutorial
// hasn't been seen, the tutorial text is returned, the modal slot is claimed
// for it and the game id is recorded as seen. The tutorial shows once, ever.
func (s *GameService) StartGame(userID, gameID string, now time.Time) (StartResult, error) {
	game, ok := models.MinigameByID(gameID)
	if !ok {
		return StartResult{}, ErrUnknownGame
	}

	profile, err := s.Profiles.Load(userID)
	if err != nil {
		return StartResult{}, err
	}

	access := s.Gate.CheckAccess(&profile, game)
	result := StartResult{Access: access}
	if !access.Allowed {
		return result, nil
	}

	session := s.Sessions.Get(userID, now)
	if access.NeedsTutorial {
		result.Tutorial = game.Tutorial
		// Tutorial owns the modal slot until the client releases it. If
		// something else holds the slot the tutorial simply isn't modal;
		// entry still counts as seen.
		_ = session.ClaimModal(models.ModalTutorial)
		if _, err := s.Profiles.Mutate(userID, func(p *models.UserProfile) {
			s.Gate.MarkTutorialSeen(p, game.ID)
		}); err != nil {
			return result, err
		}
	}
	session.SetScreen(models.ScreenGame, now)
	return result, nil
}

// FinishGame applies a completed game's score and queues the resulting
// celebrations. Events enter the queue as level-ups, then achievements, then
// the streak event, and drain strictly FIFO from there.
func (s *GameService) FinishGame(userID, gameID string, score int64, now time.Time) (models.UserProfile, []models.GameEvent, error) {
	game, ok := models.MinigameByID(gameID)
	if !ok {
		return models.UserProfile{}, nil, ErrUnknownGame
	}
	if score < 0 {
		score = 0
	}

	var levelUps, streaks, achievements []models.GameEvent
	profile, err := s.Profiles.Mutate(userID, func(p *models.UserProfile) {
		for _, ev := range s.Engine.ApplyGameResult(p, game.ID, score, now) {
			if ev.Kind == models.EventLevelUp {
				levelUps = append(levelUps, ev)
			} else {
				streaks = append(streaks, ev)
			}
		}
		for _, a := range s.Achievements.Evaluate(p) {
			achievements = append(achievements, models.AchievementEvent(a))
		}
	})
	if err != nil {
		return profile, nil, err
	}

	events := append(levelUps, append(achievements, streaks...)...)
	session := s.Sessions.Get(userID, now)
	session.EnqueueEvents(events...)
	session.SetScreen(models.ScreenHome, now)
	return profile, events, nil
}

// PurchaseGame runs the coin-cost unlock transaction.
func (s *GameService) PurchaseGame(userID, gameID string) (models.UserProfile, error) {
	game, ok := models.MinigameByID(gameID)
	if !ok {
		return models.UserProfile{}, ErrUnknownGame
	}

	profile, err := s.Profiles.Load(userID)
	if err != nil {
		return profile, err
	}
	// Validate before committing; Mutate functions must not fail.
	if err := s.Gate.Purchase(&profile, game); err != nil {
		return profile, err
	}

	return s.Profiles.Mutate(userID, func(p *models.UserProfile) {
		_ = s.Gate.Purchase(p, game)
	})
}

// UnlockGameViaAd records an ad-gate unlock after a rewarded-ad grant.
func (s *GameService) UnlockGameViaAd(userID, gameID string) (models.UserProfile, error) {
	game, ok := models.MinigameByID(gameID)
	if !ok {
		return models.UserProfile{}, ErrUnknownGame
	}
	return s.Profiles.Mutate(userID, func(p *models.UserProfile) {
		s.Gate.UnlockViaAd(p, game)
	})
}

// WaterGarden grants the once-per-day watering experience bonus.
func (s *GameService) WaterGarden(userID string, now time.Time) (models.UserProfile, []models.GameEvent, error) {
	profile, err := s.Profiles.Load(userID)
	if err != nil {
		return profile, nil, err
	}
	if !CanWaterToday(&profile, now) {
		return profile, nil, ErrAlreadyDone
	}

	var events []models.GameEvent
	profile, err = s.Profiles.Mutate(userID, func(p *models.UserProfile) {
		events = s.Engine.ApplyGardenWatering(p, now)
		for _, a := range s.Achievements.Evaluate(p) {
			events = append(events, models.AchievementEvent(a))
		}
	})
	if err != nil {
		return profile, nil, err
	}
	s.Sessions.Get(userID, now).EnqueueEvents(events...)
	return profile, events, nil
}

// ClaimDaily credits the daily login reward.
func (s *GameService) ClaimDaily(userID string, now time.Time) (models.UserProfile, int64, error) {
	profile, err := s.Profiles.Load(userID)
	if err != nil {
		return profile, 0, err
	}
	if !CanClaimDaily(&profile, now) {
		return profile, 0, ErrAlreadyDone
	}

	var reward int64
	var events []models.GameEvent
	profile, err = s.Profiles.Mutate(userID, func(p *models.UserProfile) {
		reward = s.Engine.ApplyDailyClaim(p, now)
		for _, a := range s.Achievements.Evaluate(p) {
			events = append(events, models.AchievementEvent(a))
		}
	})
	if err != nil {
		return profile, 0, err
	}
	s.Sessions.Get(userID, now).EnqueueEvents(events...)
	return profile, reward, nil
}

// CompleteChallenge records a daily-challenge win.
func (s *GameService) CompleteChallenge(userID string, now time.Time) (models.UserProfile, int64, error) {
	profile, err := s.Profiles.Load(userID)
	if err != nil {
		return profile, 0, err
	}
	if !CanCompleteChallenge(&profile, now) {
		return profile, 0, ErrAlreadyDone
	}

	var reward int64
	var events []models.GameEvent
	profile, err = s.Profiles.Mutate(userID, func(p *models.UserProfile) {
		reward = s.Engine.ApplyChallengeWin(p, now)
		for _, a := range s.Achievements.Evaluate(p) {
			events = append(events, models.AchievementEvent(a))
		}
	})
	if err != nil {
		return profile, 0, err
	}
	s.Sessions.Get(userID, now).EnqueueEvents(events...)
	return profile, reward, nil
}

// ErrAlreadyDone covers all once-per-calendar-day actions.
var ErrAlreadyDone = errors.New("already done today")
