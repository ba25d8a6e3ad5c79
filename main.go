package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/parthjadhav85/MyTools-Website/internal/auth"
	"github.com/parthjadhav85/MyTools-Website/internal/config"
	"github.com/parthjadhav85/MyTools-Website/internal/db"
	"github.com/parthjadhav85/MyTools-Website/internal/middleware"
	"github.com/parthjadhav85/MyTools-Website/internal/rating"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config: ", err)
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	log.Println("Connected to database")

	if err := auth.Init(conn); err != nil {
		log.Fatal("Failed to migrate auth tables: ", err)
	}
	if err := rating.Init(conn); err != nil {
		log.Fatal("Failed to migrate rating tables: ", err)
	}

	authHandler := &auth.Handler{
		Provider: buildProvider(cfg, conn),
		Sessions: auth.NewSessionStore(conn),
		Cookies: auth.CookiePolicy{
			TTL:         cfg.SessionTTL(),
			CrossOrigin: cfg.CrossOrigin,
		},
	}
	ratingHandler := &rating.Handler{
		Store: rating.NewStore(conn, cfg.Ratings),
		Seeds: cfg.Ratings,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.SecurityHeaders)
	if cfg.CrossOrigin {
		r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	}

	r.Route("/api", func(api chi.Router) {
		authHandler.SetupRoutes(api)
		ratingHandler.SetupRoutes(api)
	})

	// Static assets are served only by the same-origin variant; the
	// cross-origin variant leaves them to the frontend's own host.
	if cfg.CrossOrigin {
		r.Get("/", RootHandler)
	} else {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port :%s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}
	log.Println("Server stopped")
}

func buildProvider(cfg config.Config, conn *gorm.DB) auth.AuthProvider {
	if cfg.AuthProvider == config.ProviderHosted {
		return auth.NewHostedProvider(cfg.Identity.APIKey, cfg.Identity.Endpoint)
	}
	return auth.NewLocalProvider(auth.NewUserStore(conn))
}
