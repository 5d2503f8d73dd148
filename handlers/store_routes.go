// handlers/store_routes.go
package handlers

import (
	"brain-play-system/middleware"
	"brain-play-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStoreRoutes(app *fiber.App, store *services.StoreService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/store", store.GetStore)
	secured.Post("/store/purchase", store.PurchaseItem)
	secured.Post("/store/equip", store.EquipItem)
	secured.Post("/wheel/spin", store.SpinWheel)
}
