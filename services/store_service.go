package services

import (
	"log"
	"math/rand/v2"
	"time"

	"brain-play-system/models"

	"github.com/gofiber/fiber/v2"
)

// StoreService covers the cosmetic store, the bonus wheel on the betting
// screen and the weekly raffle. Handlers follow the service-method style used
// across the rest of the HTTP surface.
type StoreService struct {
	Profiles     *ProfileStore
	Achievements *AchievementEvaluator
	Sessions     *SessionRegistry
}

func NewStoreService(profiles *ProfileStore, achievements *AchievementEvaluator, sessions *SessionRegistry) *StoreService {
	return &StoreService{Profiles: profiles, Achievements: achievements, Sessions: sessions}
}

// wheelPrize is one slice of the bonus wheel; weights are relative.
type wheelPrize struct {
	Coins  int64
	Weight int
}

var wheelPrizes = []wheelPrize{
	{Coins: 25, Weight: 30},
	{Coins: 50, Weight: 25},
	{Coins: 100, Weight: 20},
	{Coins: 250, Weight: 15},
	{Coins: 500, Weight: 8},
	{Coins: 1000, Weight: 2},
}

func spinPrize() int64 {
	total := 0
	for _, p := range wheelPrizes {
		total += p.Weight
	}
	roll := rand.IntN(total)
	for _, p := range wheelPrizes {
		roll -= p.Weight
		if roll < 0 {
			return p.Coins
		}
	}
	return wheelPrizes[0].Coins
}

// Raffle tuning: one draw per week, win chance grows with ticket count.
const (
	raffleInterval     = 7 * 24 * time.Hour
	rafflePrize        = 2500
	raffleChancePerTik = 0.05
	raffleChanceCap    = 0.5
)

// GetStore returns both cosmetic catalogs annotated with ownership.
func (s *StoreService) GetStore(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	profile, err := s.Profiles.Load(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}

	type ownedItem struct {
		models.StoreItem
		Owned    bool `json:"owned"`
		Equipped bool `json:"equipped"`
	}
	annotate := func(catalog []models.StoreItem, unlocked []string, current string) []ownedItem {
		out := make([]ownedItem, len(catalog))
		for i, item := range catalog {
			out[i] = ownedItem{
				StoreItem: item,
				Owned:     models.ContainsID(unlocked, item.ID),
				Equipped:  item.ID == current,
			}
		}
		return out
	}

	return c.JSON(fiber.Map{
		"coins":   profile.Coins,
		"tickets": profile.WeeklyTickets,
		"themes":  annotate(models.ThemeCatalog, profile.UnlockedThemes, profile.CurrentTheme),
		"avatars": annotate(models.AvatarCatalog, profile.UnlockedAvatars, profile.CurrentAvatar),
	})
}

// PurchaseItem buys a cosmetic. Rejected with no mutation on insufficient
// funds; buying an owned item is a conflict.
func (s *StoreService) PurchaseItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		Kind models.StoreItemKind `json:"kind"`
		ID   string               `json:"id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	item, ok := models.StoreItemByID(req.Kind, req.ID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown store item"})
	}

	profile, err := s.Profiles.Load(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}

	unlocked := profile.UnlockedThemes
	if item.Kind == models.StoreItemAvatar {
		unlocked = profile.UnlockedAvatars
	}
	if models.ContainsID(unlocked, item.ID) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "item already owned"})
	}
	if profile.Coins < item.Price {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "insufficient coins"})
	}

	var events []models.GameEvent
	profile, err = s.Profiles.Mutate(userID, func(p *models.UserProfile) {
		p.Coins -= item.Price
		if item.Kind == models.StoreItemTheme {
			p.UnlockedThemes = models.AppendUnique(p.UnlockedThemes, item.ID)
		} else {
			p.UnlockedAvatars = models.AppendUnique(p.UnlockedAvatars, item.ID)
		}
		for _, a := range s.Achievements.Evaluate(p) {
			events = append(events, models.AchievementEvent(a))
		}
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile"})
	}
	s.Sessions.Get(userID, time.Now()).EnqueueEvents(events...)

	return c.JSON(fiber.Map{"message": "purchased", "item": item, "coins": profile.Coins})
}

// EquipItem selects an owned cosmetic.
func (s *StoreService) EquipItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		Kind models.StoreItemKind `json:"kind"`
		ID   string               `json:"id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	item, ok := models.StoreItemByID(req.Kind, req.ID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown store item"})
	}

	profile, err := s.Profiles.Load(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}

	owned := models.ContainsID(profile.UnlockedThemes, item.ID)
	if item.Kind == models.StoreItemAvatar {
		owned = models.ContainsID(profile.UnlockedAvatars, item.ID)
	}
	if !owned {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "item not owned"})
	}

	if _, err := s.Profiles.Mutate(userID, func(p *models.UserProfile) {
		if item.Kind == models.StoreItemTheme {
			p.CurrentTheme = item.ID
		} else {
			p.CurrentAvatar = item.ID
		}
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile"})
	}

	return c.JSON(fiber.Map{"message": "equipped", "item": item})
}

// SpinWheel consumes one raffle ticket for a weighted coin prize.
func (s *StoreService) SpinWheel(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	profile, err := s.Profiles.Load(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}
	if profile.WeeklyTickets <= 0 {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "no tickets left"})
	}

	prize := spinPrize()
	profile, err = s.Profiles.Mutate(userID, func(p *models.UserProfile) {
		p.WeeklyTickets--
		p.Coins += prize
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile"})
	}

	return c.JSON(fiber.Map{
		"prize":   prize,
		"coins":   profile.Coins,
		"tickets": profile.WeeklyTickets,
		"effects": []models.Effect{
			{Kind: models.EffectSound, Name: "wheel_win"},
			{Kind: models.EffectBurst, Name: "coin_shower"},
		},
	})
}

// RunRaffleSweep performs due weekly draws across all stored profiles. Win
// chance scales with accumulated tickets; tickets reset after every draw.
// Called from the scheduler, and safe to run at any cadence.
func (s *StoreService) RunRaffleSweep(now time.Time) error {
	ids, err := s.Profiles.Blobs.Keys()
	if err != nil {
		return err
	}

	for _, userID := range ids {
		var events []models.GameEvent
		var won bool
		_, err := s.Profiles.Mutate(userID, func(p *models.UserProfile) {
			if p.NextRaffleDate == nil {
				next := now.Add(raffleInterval)
				p.NextRaffleDate = &next
				return
			}
			if now.Before(*p.NextRaffleDate) {
				return
			}

			if p.WeeklyTickets > 0 {
				chance := raffleChancePerTik * float64(p.WeeklyTickets)
				if chance > raffleChanceCap {
					chance = raffleChanceCap
				}
				if rand.Float64() < chance {
					p.Coins += rafflePrize
					p.RaffleWins++
					won = true
				}
			}
			p.WeeklyTickets = 0
			next := now.Add(raffleInterval)
			p.NextRaffleDate = &next

			for _, a := range s.Achievements.Evaluate(p) {
				events = append(events, models.AchievementEvent(a))
			}
		})
		if err != nil {
			log.Printf("❌ [RAFFLE] sweep failed for %s: %v", userID, err)
			continue
		}
		if won {
			log.Printf("🎟️ [RAFFLE] %s won %d coins", userID, int64(rafflePrize))
		}
		s.Sessions.Get(userID, now).EnqueueEvents(events...)
	}
	return nil
}
