package services

import (
	"errors"

	"brain-play-system/models"
)

// BlockReason names the gating modality that denied access.
type BlockReason string

const (
	BlockNone  BlockReason = ""
	BlockLevel BlockReason = "LEVEL"
	BlockCoins BlockReason = "COINS"
	BlockAd    BlockReason = "AD"
)

// Access is the result of a gate check. When Allowed and NeedsTutorial, the
// caller must route through the one-time tutorial before entering the game.
type Access struct {
	Allowed       bool        `json:"allowed"`
	Reason        BlockReason `json:"reason,omitempty"`
	NeedsTutorial bool        `json:"needs_tutorial,omitempty"`
}

var (
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrNotPurchasable    = errors.New("game has no coin cost")
	ErrNotAdGated        = errors.New("game is not ad gated")
)

// UnlockGate decides whether a requested minigame is playable now and performs
// the unlock transactions. A game carries at most one static requirement.
type UnlockGate struct{}

func NewUnlockGate() *UnlockGate {
	return &UnlockGate{}
}

// CheckAccess evaluates the game's requirement against the profile. Level
// gates are checked live; coin-cost and ad gates are satisfied once the game
// id has been paid into unlockedGames.
func (g *UnlockGate) CheckAccess(p *models.UserProfile, game models.Minigame) Access {
	switch {
	case game.UnlockLevel > 0 && p.Level < game.UnlockLevel:
		return Access{Reason: BlockLevel}
	case game.UnlockCost > 0 && !models.ContainsID(p.UnlockedGames, game.ID):
		return Access{Reason: BlockCoins}
	case game.AdGated && !models.ContainsID(p.UnlockedGames, game.ID):
		return Access{Reason: BlockAd}
	}
	return Access{
		Allowed:       true,
		NeedsTutorial: !models.ContainsID(p.TutorialsSeen, game.ID),
	}
}

// Purchase deducts the game's coin cost and records the unlock. Rejected with
// no mutation when funds are insufficient or the game has no coin cost.
func (g *UnlockGate) Purchase(p *models.UserProfile, game models.Minigame) error {
	if game.UnlockCost <= 0 {
		return ErrNotPurchasable
	}
	if models.ContainsID(p.UnlockedGames, game.ID) {
		return nil // already paid, nothing to do
	}
	if p.Coins < game.UnlockCost {
		return ErrInsufficientCoins
	}
	p.Coins -= game.UnlockCost
	p.UnlockedGames = models.AppendUnique(p.UnlockedGames, game.ID)
	return nil
}

// UnlockViaAd records an ad-gate unlock. Must only be called after the ad
// collaborator confirms a rewarded view; unconditional and idempotent.
func (g *UnlockGate) UnlockViaAd(p *models.UserProfile, game models.Minigame) {
	p.UnlockedGames = models.AppendUnique(p.UnlockedGames, game.ID)
}

// MarkTutorialSeen records the one-time tutorial for a game id.
func (g *UnlockGate) MarkTutorialSeen(p *models.UserProfile, gameID string) {
	p.TutorialsSeen = models.AppendUnique(p.TutorialsSeen, gameID)
}
