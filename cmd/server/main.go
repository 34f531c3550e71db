package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/careportal-assistant/internal/api"
	"github.com/themobileprof/careportal-assistant/internal/api/middleware"
	"github.com/themobileprof/careportal-assistant/internal/chat"
	"github.com/themobileprof/careportal-assistant/internal/circuitbreaker"
	"github.com/themobileprof/careportal-assistant/internal/classifier"
	"github.com/themobileprof/careportal-assistant/internal/config"
	"github.com/themobileprof/careportal-assistant/internal/conversation"
	"github.com/themobileprof/careportal-assistant/internal/memory"
	"github.com/themobileprof/careportal-assistant/internal/remote"
	"github.com/themobileprof/careportal-assistant/internal/specialist"
	"github.com/themobileprof/careportal-assistant/internal/store"
	"github.com/themobileprof/careportal-assistant/internal/ws"
	"github.com/themobileprof/careportal-assistant/pkg/nlu"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		log.Println("⚠️  JWT_SECRET not set, session tokens are forwarded unverified")
	}

	// Specialty table is fixed for the life of the process
	var rules []specialist.Rule
	if cfg.SpecialtyRulesFile != "" {
		rules, err = specialist.LoadRules(cfg.SpecialtyRulesFile)
		if err != nil {
			log.Fatalf("Failed to load specialty rules: %v", err)
		}
		log.Printf("✅ Loaded %d specialty rules from %s", len(rules), cfg.SpecialtyRulesFile)
	}

	ctx := context.Background()

	// Initialize message store (optional)
	messageStore, err := store.Open(ctx, store.Config{
		Driver:   cfg.StoreDriver,
		URL:      cfg.DatabaseURL,
		Database: cfg.MongoDatabase,
	})
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	if messageStore != nil {
		defer messageStore.Close()
		log.Printf("✅ Message store connected (%s)", cfg.StoreDriver)
	}

	// Initialize components
	breaker := circuitbreaker.New(cfg.BreakerMaxFailures, cfg.BreakerResetTimeout)
	nluClient := nlu.NewHTTPClient(nlu.Config{
		BaseURL:     cfg.NLUBaseURL,
		MessagePath: cfg.NLUMessagePath,
		Timeout:     cfg.NLUTimeout,
	})
	states := conversation.NewManager(cfg.SessionTTL)
	defer states.Close()

	// Initialize chat engine (shared between HTTP and WebSocket)
	chatEngine := chat.NewEngine(
		classifier.NewClassifier(),
		specialist.NewClassifier(rules),
		remote.NewAdapter(nluClient, breaker),
		states,
		memory.NewTranscript(cfg.TranscriptLimit),
	)
	if messageStore != nil {
		chatEngine.SetRecorder(messageStore)
	}

	// Initialize handlers
	chatHandler := api.NewChatHandler(chatEngine)
	wsHandler := ws.NewChatHandler(chatEngine, cfg.RateLimitPerMin, cfg.AllowedOrigins)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin)
	defer limiter.Close()

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())

	router.GET("/health", api.Health)

	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.PerIP(limiter))
	apiGroup.Use(middleware.Session(cfg.JWTSecret))
	chatHandler.RegisterRoutes(apiGroup)

	// WebSocket chat route (token via query param/header)
	router.GET("/ws/chat", middleware.PerIP(limiter), middleware.Session(cfg.JWTSecret), wsHandler.HandleChat)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
		log.Printf("📝 API endpoints:")
		log.Printf("   GET    /health")
		log.Printf("   POST   /api/chat/messages")
		log.Printf("   GET    /api/chat/sessions/:id/messages")
		log.Printf("   GET    /api/chat/sessions/:id/state")
		log.Printf("   DELETE /api/chat/sessions/:id")
		log.Printf("   WS     /ws/chat")
		log.Printf("")
		log.Printf("Press Ctrl+C to stop")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
