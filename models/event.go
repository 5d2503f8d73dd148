package models

import "fmt"

// EventKind tags the GameEvent union.
type EventKind string

const (
	EventLevelUp     EventKind = "LEVEL_UP"
	EventAchievement EventKind = "ACHIEVEMENT"
	EventStreak      EventKind = "STREAK"
)

// GameEvent is a transient celebration produced by the progression engine or
// the achievement evaluator and consumed by the event sequencer. Only the
// fields of the tagged kind are meaningful.
type GameEvent struct {
	Kind EventKind `json:"kind"`

	// LEVEL_UP
	Level  int   `json:"level,omitempty"`
	Reward int64 `json:"reward,omitempty"`

	// ACHIEVEMENT
	Achievement *Achievement `json:"achievement,omitempty"`

	// STREAK
	Streak int `json:"streak,omitempty"`
}

func LevelUpEvent(level int, reward int64) GameEvent {
	return GameEvent{Kind: EventLevelUp, Level: level, Reward: reward}
}

func AchievementEvent(a Achievement) GameEvent {
	return GameEvent{Kind: EventAchievement, Achievement: &a}
}

func StreakEvent(streak int) GameEvent {
	return GameEvent{Kind: EventStreak, Streak: streak}
}

// EffectKind tags a fire-and-forget presentation side effect.
type EffectKind string

const (
	EffectSound EffectKind = "sound"
	EffectBurst EffectKind = "burst"
)

// Effect is a presentation side-effect descriptor. The engine never plays a
// sound or draws confetti itself; it returns these tags and the client
// executes them, so the state logic stays pure.
type Effect struct {
	Kind EffectKind `json:"kind"`
	Name string     `json:"name"`
}

// CelebrationEffects returns the sound cue and visual burst for an event,
// distinct per event kind.
func CelebrationEffects(e GameEvent) []Effect {
	switch e.Kind {
	case EventLevelUp:
		return []Effect{
			{Kind: EffectSound, Name: "level_up"},
			{Kind: EffectBurst, Name: "confetti_gold"},
		}
	case EventAchievement:
		return []Effect{
			{Kind: EffectSound, Name: "achievement"},
			{Kind: EffectBurst, Name: "confetti_stars"},
		}
	case EventStreak:
		return []Effect{
			{Kind: EffectSound, Name: "streak"},
			{Kind: EffectBurst, Name: "flame_burst"},
		}
	}
	return nil
}

func (e GameEvent) String() string {
	switch e.Kind {
	case EventLevelUp:
		return fmt.Sprintf("LEVEL_UP{level=%d reward=%d}", e.Level, e.Reward)
	case EventAchievement:
		if e.Achievement != nil {
			return fmt.Sprintf("ACHIEVEMENT{%s}", e.Achievement.ID)
		}
		return "ACHIEVEMENT{}"
	case EventStreak:
		return fmt.Sprintf("STREAK{%d}", e.Streak)
	}
	return string(e.Kind)
}

// Screen identifies what the client is currently showing. Queued celebrations
// and forced ads may only fire on menu screens.
type Screen string

const (
	ScreenHome     Screen = "home"
	ScreenStore    Screen = "store"
	ScreenProfile  Screen = "profile"
	ScreenSettings Screen = "settings"
	ScreenRanking  Screen = "ranking"
	ScreenBetting  Screen = "betting"
	ScreenGame     Screen = "game"
)

// IsMenuScreen reports whether s is one of the idle menu screens (anything but
// an active minigame).
func IsMenuScreen(s Screen) bool {
	switch s {
	case ScreenHome, ScreenStore, ScreenProfile, ScreenSettings, ScreenRanking, ScreenBetting:
		return true
	}
	return false
}

// ModalOwner names the holder of the single shared modal slot.
type ModalOwner string

const (
	ModalNone         ModalOwner = ""
	ModalTutorial     ModalOwner = "tutorial"
	ModalVictory      ModalOwner = "victory"
	ModalUnlockPrompt ModalOwner = "unlock_prompt"
	ModalEventPopup   ModalOwner = "event_popup"
	ModalForcedAd     ModalOwner = "forced_ad"
	ModalRewardedAd   ModalOwner = "rewarded_ad"
)
