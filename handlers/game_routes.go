// handlers/game_routes.go
package handlers

import (
	"errors"
	"time"

	"brain-play-system/middleware"
	"brain-play-system/models"
	"brain-play-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, games *services.GameService, content *services.ContentClient) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/games", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, err := games.Profiles.Load(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
		}

		type catalogEntry struct {
			models.Minigame
			Access    services.Access `json:"access"`
			HighScore int64           `json:"high_score"`
		}
		entries := make([]catalogEntry, len(models.MinigameCatalog))
		for i, g := range models.MinigameCatalog {
			entries[i] = catalogEntry{
				Minigame:  g,
				Access:    games.Gate.CheckAccess(&profile, g),
				HighScore: profile.HighScores[g.ID],
			}
		}
		return c.JSON(entries)
	})

	secured.Post("/games/:id/start", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		result, err := games.StartGame(userID, c.Params("id"), time.Now())
		if err != nil {
			if errors.Is(err, services.ErrUnknownGame) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown game"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to start game", "cause": err.Error()})
		}
		if !result.Access.Allowed {
			return c.Status(fiber.StatusForbidden).JSON(result)
		}
		return c.JSON(result)
	})

	secured.Post("/games/:id/finish", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Score int64 `json:"score"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		profile, events, err := games.FinishGame(userID, c.Params("id"), req.Score, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrUnknownGame) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown game"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record result", "cause": err.Error()})
		}

		return c.JSON(fiber.Map{
			"coins":        profile.Coins,
			"level":        profile.Level,
			"experience":   profile.Experience,
			"streak":       profile.Streak,
			"games_played": profile.TotalGamesPlayed,
			"events":       events,
		})
	})

	secured.Post("/games/:id/purchase", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, err := games.PurchaseGame(userID, c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownGame):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown game"})
			case errors.Is(err, services.ErrInsufficientCoins):
				return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "insufficient coins"})
			case errors.Is(err, services.ErrNotPurchasable):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game has no coin cost"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "purchase failed", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "unlocked", "coins": profile.Coins, "unlocked_games": profile.UnlockedGames})
	})

	secured.Get("/games/:id/content", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		game, ok := models.MinigameByID(c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown game"})
		}
		if game.Content == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game does not use remote content"})
		}

		profile, err := games.Profiles.Load(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
		}

		payload, err := content.FetchForGame(game.Content, profile.Language)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "no content available"})
		}
		return c.JSON(payload)
	})

	secured.Get("/daily/word", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, err := games.Profiles.Load(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
		}
		word, err := content.DailyChallengeWord(profile.Language, time.Now())
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "no content available"})
		}
		return c.JSON(word)
	})

	secured.Post("/daily/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, reward, err := games.ClaimDaily(userID, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrAlreadyDone) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "daily reward already claimed"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "claim failed", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{
			"reward":       reward,
			"coins":        profile.Coins,
			"daily_streak": profile.DailyStreak,
			"tickets":      profile.WeeklyTickets,
		})
	})

	secured.Post("/daily/challenge/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, reward, err := games.CompleteChallenge(userID, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrAlreadyDone) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "challenge already completed today"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "completion failed", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{
			"reward":         reward,
			"coins":          profile.Coins,
			"challenges_won": profile.DailyChallengesWon,
		})
	})

	secured.Post("/garden/water", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, events, err := games.WaterGarden(userID, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrAlreadyDone) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "garden already watered today"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "watering failed", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{
			"level":      profile.Level,
			"experience": profile.Experience,
			"events":     events,
		})
	})
}
