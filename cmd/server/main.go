package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"github.com/PJ-Pooja16/ReliefDAO/internal/ai"
	"github.com/PJ-Pooja16/ReliefDAO/internal/config"
	"github.com/PJ-Pooja16/ReliefDAO/internal/dao"
	"github.com/PJ-Pooja16/ReliefDAO/internal/db"
	"github.com/PJ-Pooja16/ReliefDAO/internal/handlers"
	"github.com/PJ-Pooja16/ReliefDAO/internal/middleware"
	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
	"github.com/PJ-Pooja16/ReliefDAO/internal/wallet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var recordStore store.Store
	switch cfg.Store {
	case "memory":
		mem := store.NewMemory()
		if err := store.Seed(ctx, mem); err != nil {
			log.Fatalf("Failed to seed memory store: %v", err)
		}
		recordStore = mem
		log.Println("Using seeded in-memory store (dev mode)")
	default:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()
		recordStore = database
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}

	funding := dao.NewFundingAggregator(recordStore)
	proposals := dao.NewProposalService(recordStore, funding)
	voting := dao.NewVotingEngine(recordStore)
	disasters := dao.NewDisasterService(recordStore)
	signer := wallet.NewRPCSigner(cfg.WalletRPCURL, cfg.Treasury)
	donations := dao.NewDonationService(recordStore, signer, funding)
	aiClient := ai.NewClient(cfg.GeminiAPIKey)

	h := handlers.New(recordStore, sessionStore, disasters, proposals, voting,
		funding, donations, aiClient, dao.SimpleMajority(3))

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir("uploads"))))

	r.Post("/api/register", h.Register)
	r.Post("/api/login", h.Login)
	r.Post("/api/logout", h.Logout)

	r.Get("/api/disasters", h.ListDisasters)
	r.Get("/api/disasters/{id}", h.GetDisaster)
	r.Get("/api/proposals/{id}", h.GetProposal)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessionStore))
		r.Get("/api/me", h.Me)
		r.Get("/api/my/proposals", h.MyProposals)
		r.Get("/api/my/donations", h.MyDonations)
		r.Post("/api/proposals", h.CreateProposal)
		r.Post("/api/proposals/{id}/votes", h.CastVote)
		r.Post("/api/proposals/{id}/verification", h.SubmitVerification)
		r.Post("/api/proposals/{id}/complete", h.CompleteProposal)
		r.Post("/api/donations", h.Donate)
		r.Post("/api/assist/proposal-plan", h.DraftProposalPlan)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sessionStore, string(models.RoleAdmin)))
		r.Post("/api/disasters", h.CreateDisaster)
		r.Post("/api/disasters/{id}/advance", h.AdvanceDisaster)
		r.Post("/api/disasters/{id}/recompute", h.RecomputeFunding)
		r.Post("/api/proposals/{id}/close", h.CloseVoting)
	})

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("Server starting on http://%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
