package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/plushdex/backend/internal/config"
	"github.com/plushdex/backend/internal/db"
	"github.com/plushdex/backend/internal/handler"
	"github.com/plushdex/backend/internal/service"
)

func main() {
	// .env is optional; deployments usually set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}
	if err := store.EnsurePlushSchema(ctx); err != nil {
		log.Fatalf("failed to ensure plush schema: %v", err)
	}
	if err := store.EnsureUserSchema(ctx); err != nil {
		log.Fatalf("failed to ensure user schema: %v", err)
	}

	authService, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		log.Fatalf("failed to configure auth: %v", err)
	}
	catalogService := service.NewCatalogService(store)

	plushHandler := handler.NewPlushHandler(catalogService)
	authHandler := handler.NewAuthHandler(authService)

	router := gin.Default()
	router.Use(handler.RequestIDMiddleware())
	if len(cfg.Server.AllowedOrigins) > 0 {
		router.Use(handler.CORSMiddleware(cfg.Server.AllowedOrigins))
	}

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	router.GET("/plushies/all", plushHandler.ListAll)
	router.GET("/plushies/:id", plushHandler.Get)
	router.GET("/plushies/", plushHandler.ListPage)
	router.POST("/plushies/", plushHandler.Create)
	router.GET("/search/", plushHandler.Search)
	router.GET("/filter/", plushHandler.Filter)

	router.POST("/register", authHandler.Register)
	router.POST("/token", authHandler.Token)
	router.GET("/auth/me", handler.AuthMiddleware(authService), authHandler.Me)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("http server started on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
