package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reportbox/backend/internal/api/handler"
	"reportbox/backend/internal/assistant"
	"reportbox/backend/internal/config"
	"reportbox/backend/internal/geocode"
	"reportbox/backend/internal/livefeed"
	"reportbox/backend/internal/models"
	"reportbox/backend/internal/notify"
	"reportbox/backend/internal/otp"
	"reportbox/backend/internal/storage"
)

func setupChatStore(cfg *config.Config) *storage.ChatService {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	if err := db.AutoMigrate(&models.ChatUser{}, &models.ChatTurn{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Chat store connections established, migrations complete.")
	return storage.NewChatService(db, rdb)
}

func main() {
	log.Println("Starting ReportBox Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	reportStore, err := storage.NewMongoStore(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect MongoDB: %v", err)
	}
	defer reportStore.Disconnect(context.Background())

	chatStore := setupChatStore(cfg)

	verifier := otp.NewVerifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken,
		cfg.TwilioServiceSID, cfg.OTPCountryCode)
	geocoder := geocode.NewClient(cfg.GeocodeAPIKey)
	gen := assistant.NewClient(cfg.AssistantURL)

	notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("Warning: Telegram notifications disabled: %v", err)
	}

	feed := livefeed.NewHub()
	go feed.Run()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	h := handler.NewHandler(reportStore, chatStore, verifier, geocoder, gen, feed, notifier, cfg)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("API listening on %s", cfg.Addr)
	log.Fatal(server.ListenAndServe())
}
