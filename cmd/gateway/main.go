package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/nocalc-trainer/reviewd/internal/api/http"
	auth "github.com/nocalc-trainer/reviewd/internal/auth/middleware"
	"github.com/nocalc-trainer/reviewd/internal/config"
	"github.com/nocalc-trainer/reviewd/internal/db"
	"github.com/nocalc-trainer/reviewd/internal/genstatus"
	"github.com/nocalc-trainer/reviewd/internal/question"
	"github.com/nocalc-trainer/reviewd/internal/rbac"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := question.NewSQLStore(dbh, cfg.DBDriver)

	statusMgr, err := genstatus.NewManager(cfg.StatusFilePath)
	if err != nil {
		log.Fatalf("generation status file: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, auth.LoginCreds{
		Username: cfg.ReviewerUser,
		PassHash: cfg.ReviewerPassHash,
		Role:     cfg.ReviewerRole,
	}))

	// Protected API (JWT → subject/role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("question:list")).
			Get("/api/questions", api.ListQuestionsHandler(store))
		pr.With(rbac.Require("question:view")).
			Get("/api/questions/{questionID}", api.GetQuestionHandler(store))
		pr.With(rbac.Require("question:review")).
			Patch("/api/questions/{questionID}/status", api.UpdateStatusHandler(store))
		pr.With(rbac.Require("question:edit")).
			Patch("/api/questions/{questionID}", api.UpdateContentHandler(store))
		pr.With(rbac.Require("question:delete")).
			Delete("/api/questions/{questionID}", api.DeleteQuestionHandler(store))

		pr.With(rbac.RequireAny("generation:view", "generation:control")).
			Get("/api/generation/status", api.GetGenerationStatusHandler(statusMgr))
		pr.With(rbac.Require("generation:control")).
			Post("/api/generation/stop", api.StopGenerationHandler(statusMgr))
		pr.With(rbac.Require("generation:control")).
			Post("/api/generation/reset", api.ResetGenerationHandler(statusMgr))

		pr.With(rbac.Require("tables:read")).
			Get("/api/tables/{tableKey}", api.GetScoreTableHandler(cfg.TableDir))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
