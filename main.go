package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"brain-play-system/handlers"
	"brain-play-system/middleware"
	"brain-play-system/models"
	"brain-play-system/services"
	"brain-play-system/utils"
	"brain-play-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-Device-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.ProfileRecord{},
		&models.ContentItem{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	contentServiceURL := os.Getenv("CONTENT_SERVICE_URL")
	if contentServiceURL == "" {
		log.Fatal("CONTENT_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("BRAIN_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("BRAIN_SERVICE_TOKEN environment variable not set")
	}

	blobs := services.NewGormBlobStore(db)
	leaderboard := services.NewLeaderboardSynchronizer()
	profileStore := services.NewProfileStore(blobs, leaderboard)
	achievements := services.NewAchievementEvaluator()
	engine := services.NewProgressionEngine(leaderboard)
	gate := services.NewUnlockGate()
	sessions := services.NewSessionRegistry()

	gameService := services.NewGameService(profileStore, engine, gate, achievements, sessions)
	storeService := services.NewStoreService(profileStore, achievements, sessions)
	contentClient := services.NewContentClient(contentServiceURL, serviceToken, db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go workers.PollSnapshots(ctx, blobs, 15*time.Minute)

	contentClient.StartPrefetchScheduler([]string{"en", "es", "de", "fr"})
	storeService.StartRaffleScheduler()

	handlers.SetupProfileRoutes(app, profileStore, leaderboard)
	handlers.SetupGameRoutes(app, gameService, contentClient)
	handlers.SetupSessionRoutes(app, sessions, gameService)
	handlers.SetupStoreRoutes(app, storeService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Profile snapshot backups running (every 15m)")
	log.Println("✅ Daily word prefetch + raffle schedulers running")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
