// handlers/profile_routes.go
package handlers

import (
	"strings"

	"brain-play-system/middleware"
	"brain-play-system/models"
	"brain-play-system/services"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

func SetupProfileRoutes(app *fiber.App, profiles *services.ProfileStore, leaderboard *services.LeaderboardSynchronizer) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/user/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, err := profiles.Load(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})

	secured.Post("/user/reset", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, err := profiles.Reset(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reset profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "profile reset", "profile": profile})
	})

	secured.Patch("/user/settings", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			UserName             *string `json:"user_name"`
			SoundEnabled         *bool   `json:"sound_enabled"`
			NotificationsEnabled *bool   `json:"notifications_enabled"`
			Language             *string `json:"language"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		lang := ""
		if req.Language != nil {
			tag, err := language.Parse(*req.Language)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid language tag"})
			}
			lang = tag.String()
		}
		if req.UserName != nil && strings.TrimSpace(*req.UserName) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user name cannot be empty"})
		}

		profile, err := profiles.Mutate(userID, func(p *models.UserProfile) {
			if req.UserName != nil {
				p.UserName = strings.TrimSpace(*req.UserName)
			}
			if req.SoundEnabled != nil {
				p.SoundEnabled = *req.SoundEnabled
			}
			if req.NotificationsEnabled != nil {
				p.NotificationsEnabled = *req.NotificationsEnabled
			}
			if lang != "" {
				p.Language = lang
			}
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save settings",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})

	secured.Post("/user/rated", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if _, err := profiles.Mutate(userID, func(p *models.UserProfile) {
			p.HasRatedApp = true
		}); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile"})
		}
		return c.JSON(fiber.Map{"message": "thanks!"})
	})

	secured.Get("/leaderboard", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		// Viewing the ranking is the on-demand moment the bot economy moves.
		profile, err := profiles.Mutate(userID, func(p *models.UserProfile) {
			leaderboard.Tick(p)
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}

		ranked := services.Ranked(&profile)
		userRank := 0
		for i, e := range ranked {
			if e.IsUser {
				userRank = i + 1
				break
			}
		}

		limit := c.QueryInt("limit", 100)
		if limit < 1 || limit > len(ranked) {
			limit = len(ranked)
		}

		return c.JSON(fiber.Map{
			"entries":   ranked[:limit],
			"user_rank": userRank,
			"total":     len(ranked),
		})
	})
}
