// handlers/session_routes.go
package handlers

import (
	"errors"
	"time"

	"brain-play-system/middleware"
	"brain-play-system/models"
	"brain-play-system/services"

	"github.com/gofiber/fiber/v2"
)

// RewardedCoinBonus is what a "watch ad for coins" completion pays.
const RewardedCoinBonus = 100

func SetupSessionRoutes(app *fiber.App, sessions *services.SessionRegistry, games *services.GameService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/session/screen", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Screen models.Screen `json:"screen"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if !models.IsMenuScreen(req.Screen) && req.Screen != models.ScreenGame {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown screen"})
		}

		sessions.Get(userID, time.Now()).SetScreen(req.Screen, time.Now())
		return c.JSON(fiber.Map{"message": "ok"})
	})

	// The client polls this on a fixed interval. One tick evaluates the
	// forced-ad cadence first and the celebration queue second, so the two
	// never claim the same idle window.
	secured.Post("/session/tick", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		action := sessions.Get(userID, time.Now()).Tick(time.Now())
		return c.JSON(action)
	})

	secured.Post("/session/event/dismiss", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		sessions.Get(userID, time.Now()).DismissEvent()
		return c.JSON(fiber.Map{"message": "ok"})
	})

	// Client-driven modals (tutorial, victory screen, unlock prompt) share the
	// single modal slot with event popups and ads.
	secured.Post("/session/modal/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Owner models.ModalOwner `json:"owner"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		switch req.Owner {
		case models.ModalTutorial, models.ModalVictory, models.ModalUnlockPrompt:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown modal owner"})
		}

		if err := sessions.Get(userID, time.Now()).ClaimModal(req.Owner); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "modal slot is busy"})
		}
		return c.JSON(fiber.Map{"message": "ok"})
	})

	secured.Post("/session/modal/release", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Owner models.ModalOwner `json:"owner"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		sessions.Get(userID, time.Now()).ReleaseModal(req.Owner)
		return c.JSON(fiber.Map{"message": "ok"})
	})

	secured.Post("/ads/rewarded/request", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Purpose services.RewardedPurpose `json:"purpose"`
			GameID  string                   `json:"game_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		switch req.Purpose {
		case services.RewardedGeneric, services.RewardedBonusCoins:
		case services.RewardedUnlockGame:
			game, ok := models.MinigameByID(req.GameID)
			if !ok || !game.AdGated {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game is not ad gated"})
			}
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown rewarded purpose"})
		}

		token, err := sessions.Get(userID, time.Now()).RequestRewarded(req.Purpose, req.GameID)
		if err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "modal slot is busy"})
		}
		return c.JSON(fiber.Map{"token": token})
	})

	// The close signal from the ad collaborator. The grant fires exactly once
	// per token; closing also resets the forced-ad cadence clock.
	secured.Post("/ads/rewarded/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		grant, err := sessions.Get(userID, time.Now()).ConsumeRewarded(req.Token, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrUnknownGrant) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "unknown or already consumed grant"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "grant failed", "cause": err.Error()})
		}

		switch grant.Purpose {
		case services.RewardedUnlockGame:
			profile, err := games.UnlockGameViaAd(userID, grant.GameID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unlock failed", "cause": err.Error()})
			}
			return c.JSON(fiber.Map{"message": "unlocked", "unlocked_games": profile.UnlockedGames})
		case services.RewardedBonusCoins:
			profile, err := games.Profiles.Mutate(userID, func(p *models.UserProfile) {
				p.Coins += RewardedCoinBonus
			})
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "bonus failed", "cause": err.Error()})
			}
			return c.JSON(fiber.Map{"message": "coins granted", "coins": profile.Coins})
		}
		return c.JSON(fiber.Map{"message": "ok"})
	})

	secured.Post("/ads/closed", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		sessions.Get(userID, time.Now()).ForcedAdClosed(time.Now())
		return c.JSON(fiber.Map{"message": "ok"})
	})
}
