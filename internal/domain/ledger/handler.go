package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"animint/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/balances/{identity}", getBalanceHandler(svc))
	r.Post("/tokens/transfer", transferHandler(svc))
	r.Post("/tokens/bonus", creditBonusHandler(svc))
}

type transferRequest struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type creditBonusRequest struct {
	Identity string `json:"identity"`
}

type balanceResponse struct {
	Identity string `json:"identity"`
	Balance  uint64 `json:"balance"`
}

func getBalanceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := chi.URLParam(r, "identity")
		balance, err := svc.BalanceOf(r.Context(), identity)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, balanceResponse{Identity: identity, Balance: balance})
	}
}

func transferHandler(svc *Service) http.HandlerFunc {
	// from = caller autenticado, siempre
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Identity) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req transferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.Transfer(r.Context(), claims.Identity, req.To, req.Amount); err != nil {
			writeLedgerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func creditBonusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req creditBonusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.CreditBonus(r.Context(), req.Identity); err != nil {
			writeLedgerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]uint64{"credited": WelcomeBonus})
	}
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnknownSender):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInsufficientBalance):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, ErrAlreadyCredited):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
