package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"animint/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// BalanceReader viene del ledger: el balance es parte lógica del user pero
// lo muta (y lo posee) el ledger. Acá solo lo leemos para las respuestas.
type BalanceReader interface {
	BalanceOf(ctx context.Context, identity string) (uint64, error)
}

func RegisterRoutes(r chi.Router, svc *Service, balances BalanceReader) {
	r.Route("/users", func(ur chi.Router) {
		ur.Post("/register", registerHandler(svc, balances))
		ur.Post("/register-by-name", registerByNameHandler(svc, balances))
		ur.Post("/verify", verifyHandler(svc))
		ur.Post("/verify-by-name", verifyByNameHandler(svc))

		ur.Get("/", listUsersHandler(svc, balances))
		ur.Get("/registered-by-name/{name}", isRegisteredByNameHandler(svc))
		ur.Get("/{identity}", getUserHandler(svc, balances))
		ur.Get("/{identity}/registered", isRegisteredHandler(svc))
		ur.Get("/{identity}/verified", isVerifiedHandler(svc))
	})
}

type registerByNameRequest struct {
	Name       string `json:"name"`
	Credential string `json:"credential"`
}

type verifyByNameRequest struct {
	Name       string `json:"name"`
	Credential string `json:"credential"`
}

type userResponse struct {
	Identity     string    `json:"identity"`
	Name         string    `json:"name,omitempty"`
	Balance      uint64    `json:"balance"`
	Verified     bool      `json:"verified"`
	RegisteredAt time.Time `json:"registered_at"`
}

func registerHandler(svc *Service, balances BalanceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Identity) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.Register(r.Context(), claims.Identity)
		if err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(r.Context(), u, balances))
	}
}

func registerByNameHandler(svc *Service, balances BalanceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Identity) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerByNameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.RegisterByName(r.Context(), claims.Identity, req.Name, req.Credential)
		if err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(r.Context(), u, balances))
	}
}

func verifyHandler(svc *Service) http.HandlerFunc {
	// El caller se verifica a sí mismo: la credencial ya venía autenticada.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Identity) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Verify(r.Context(), claims.Identity); err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
	}
}

func verifyByNameHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyByNameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		identity, err := svc.VerifyByName(r.Context(), req.Name, req.Credential)
		if err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"identity": identity})
	}
}

func listUsersHandler(svc *Service, balances BalanceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(r.Context(), u, balances))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getUserHandler(svc *Service, balances BalanceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Lookup(r.Context(), chi.URLParam(r, "identity"))
		if err != nil {
			writeUserError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(r.Context(), u, balances))
	}
}

func isRegisteredHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.IsRegistered(r.Context(), chi.URLParam(r, "identity"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"registered": ok})
	}
}

func isRegisteredByNameHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.IsRegisteredByName(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"registered": ok})
	}
}

func isVerifiedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.IsVerified(r.Context(), chi.URLParam(r, "identity"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"verified": ok})
	}
}

func toUserResponse(ctx context.Context, u User, balances BalanceReader) userResponse {
	var balance uint64
	if balances != nil {
		balance, _ = balances.BalanceOf(ctx, u.Identity)
	}
	return userResponse{
		Identity:     u.Identity,
		Name:         u.Name,
		Balance:      balance,
		Verified:     u.Verified,
		RegisteredAt: u.RegisteredAt,
	}
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrBadCredential):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo,
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
