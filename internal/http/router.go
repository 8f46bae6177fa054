package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"moodledger/internal/account"
	"moodledger/internal/auth"
	"moodledger/internal/config"
	"moodledger/internal/http/handler"
	mw "moodledger/internal/http/middleware"
	"moodledger/internal/mood"
)

func NewRouter(cfg config.Config, accounts *account.Service, moods *mood.Service, jwtSvc *auth.JWT) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{Accounts: accounts, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)
	r.With(auth.RequireAuth(jwtSvc)).Post("/auth/password", ah.ChangePassword)

	me := &handler.MeHandler{Accounts: accounts}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)

	moodH := &handler.MoodHandler{Svc: moods}
	journalH := &handler.JournalHandler{Svc: moods}
	statsH := &handler.StatsHandler{Svc: moods}

	r.Route("/moods", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Post("/", moodH.Log)
		r.Get("/", moodH.List)
		r.Get("/today", moodH.Today)

		r.Put("/{id}", moodH.Update)
		r.Delete("/{id}", moodH.Delete)
	})

	r.Route("/journal", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Post("/", journalH.Save)
		r.Get("/", journalH.List)
		r.Get("/latest", journalH.Latest)
	})

	r.Route("/stats", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/", statsH.Statistics)
		r.Get("/streak", statsH.Streak)
		r.Get("/recommendations", statsH.Recommendations)
	})

	r.With(auth.RequireAuth(jwtSvc)).Get("/overview", statsH.Overview)

	return r
}
