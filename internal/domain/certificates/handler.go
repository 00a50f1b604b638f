package certificates

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"animint/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/certificates", func(cr chi.Router) {
		cr.Post("/mint", mintHandler(svc))
		cr.Get("/", listHandler(svc))
		cr.Get("/by-owner/{identity}", listByOwnerHandler(svc))
	})
}

type mintRequest struct {
	Breed string `json:"breed"`
}

type certificateResponse struct {
	ID       uint64 `json:"id"`
	Owner    string `json:"owner"`
	Breed    string `json:"breed"`
	ImageRef string `json:"image_ref"`
}

func mintHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Identity) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req mintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Mint(r.Context(), claims.Identity, req.Breed)
		if err != nil {
			writeCertError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCertResponse(c))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCertResponses(items))
	}
}

func listByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "identity"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toCertResponses(items))
	}
}

func toCertResponse(c Certificate) certificateResponse {
	return certificateResponse{
		ID:       c.ID,
		Owner:    c.Owner,
		Breed:    c.Breed,
		ImageRef: c.ImageRef,
	}
}

func toCertResponses(items []Certificate) []certificateResponse {
	out := make([]certificateResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCertResponse(c))
	}
	return out
}

func writeCertError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInsufficientBalance):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
