package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lifeverse/internal/config"
	"lifeverse/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	// Compatibility stub: the session is single-player, so the board is
	// always empty, but old clients still poll it.
	r.Get("/api/leaderboard", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": []any{}})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/log", s.handleLog)
		r.Get("/catalog/{kind}", s.handleCatalog)

		r.Post("/actions/{name}", s.handleAction)
		r.Post("/events/resolve", s.handleResolveEvent)
		r.Post("/clock/advance", s.handleAdvanceClock)

		r.Post("/save", s.handleSave)
		r.Post("/load", s.handleLoad)
		r.Post("/reset", s.handleReset)
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	n := game.DefaultRecent
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid n")
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": s.game.Notifications(n),
		"activity":      s.game.Activity(n),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.game.Catalog()
	var out any
	switch chi.URLParam(r, "kind") {
	case "jobs":
		out = cat.Jobs
	case "education":
		out = cat.Education
	case "vehicles":
		out = cat.Vehicles
	case "properties":
		out = cat.Properties
	case "businesses":
		out = cat.Businesses
	case "crimes":
		out = cat.Crimes
	case "investments":
		out = cat.Investments
	case "items":
		out = cat.Items
	case "relationships":
		out = cat.Relationships
	default:
		writeError(w, http.StatusNotFound, "unknown catalog kind")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// actionInput is the shared request body for every action; each action
// reads only the fields it needs.
type actionInput struct {
	ID     string `json:"id,omitempty"`
	Amount int64  `json:"amount,omitempty"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var in actionInput
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var (
		msg string
		err error
	)
	switch chi.URLParam(r, "name") {
	case "work":
		msg, err = s.game.Work()
	case "study":
		msg, err = s.game.Study()
	case "socialize":
		msg, err = s.game.Socialize()
	case "rest":
		msg, err = s.game.Rest()
	case "gym":
		msg, err = s.game.Gym()
	case "gamble":
		msg, err = s.game.Gamble(in.Amount)
	case "crime":
		msg, err = s.game.Crime(in.ID)
	case "deposit":
		msg, err = s.game.Deposit(in.Amount)
	case "withdraw":
		msg, err = s.game.Withdraw(in.Amount)
	case "loan":
		msg, err = s.game.TakeLoan(in.Amount)
	case "repay":
		msg, err = s.game.RepayLoan(in.Amount)
	case "buy-item":
		msg, err = s.game.BuyItem(in.ID)
	case "buy-vehicle":
		msg, err = s.game.BuyVehicle(in.ID)
	case "buy-property":
		msg, err = s.game.BuyProperty(in.ID)
	case "toggle-rent":
		msg, err = s.game.ToggleRent(in.ID)
	case "start-business":
		msg, err = s.game.StartBusiness(in.ID)
	case "invest":
		msg, err = s.game.Invest(in.ID, in.Amount)
	case "cashout":
		msg, err = s.game.CashOut(in.ID)
	case "apply-job":
		msg, err = s.game.ApplyForJob(in.ID)
	case "enroll":
		msg, err = s.game.Enroll(in.ID)
	case "meet":
		msg, err = s.game.Meet()
	case "date":
		msg, err = s.game.Date()
	case "marry":
		msg, err = s.game.Marry()
	case "child":
		msg, err = s.game.HaveChild()
	case "bonus":
		msg, err = s.game.ClaimDailyBonus()
	default:
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg, "state": s.game.Snapshot()})
}

func (s *Server) handleResolveEvent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Choice int `json:"choice"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	msg, err := s.game.ResolveEvent(in.Choice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg, "state": s.game.Snapshot()})
}

func (s *Server) handleAdvanceClock(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Minutes int `json:"minutes"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Minutes <= 0 {
		writeError(w, http.StatusBadRequest, "minutes must be positive")
		return
	}
	s.game.RunTick(in.Minutes)
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.game.Save(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if err := s.game.Load(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.game.Reset()
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownCatalogID), errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrBonusClaimed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientBank),
		errors.Is(err, game.ErrInvalidAmount),
		errors.Is(err, game.ErrLoanLimit),
		errors.Is(err, game.ErrBelowMinimum),
		errors.Is(err, game.ErrNotEnoughEnergy),
		errors.Is(err, game.ErrNoJob),
		errors.Is(err, game.ErrJobRequirements),
		errors.Is(err, game.ErrAlreadyMarried),
		errors.Is(err, game.ErrTooYoung),
		errors.Is(err, game.ErrNoSpouse),
		errors.Is(err, game.ErrNoPendingEvent),
		errors.Is(err, game.ErrInvalidChoice):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
