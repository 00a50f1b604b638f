package stats

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/stats", globalStatsHandler(svc))
	r.Get("/stats/breeder/{identity}", breederStatsHandler(svc))
}

type breederStatsResponse struct {
	Breeder         string `json:"breeder"`
	TotalAnimals    uint64 `json:"total_animals"`
	VerifiedAnimals uint64 `json:"verified_animals"`
	ReputationScore uint64 `json:"reputation_score"`
}

type globalStatsResponse struct {
	TotalAnimals    uint64 `json:"total_animals"`
	TotalLitters    uint64 `json:"total_litters"`
	TotalBreeders   uint64 `json:"total_breeders"`
	VerifiedAnimals uint64 `json:"verified_animals"`
}

func globalStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs, err := svc.GlobalStats(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, globalStatsResponse{
			TotalAnimals:    gs.TotalAnimals,
			TotalLitters:    gs.TotalLitters,
			TotalBreeders:   gs.TotalBreeders,
			VerifiedAnimals: gs.VerifiedAnimals,
		})
	}
}

func breederStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bs, err := svc.BreederStats(r.Context(), chi.URLParam(r, "identity"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if bs == nil {
			http.Error(w, "breeder has no animals", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, breederStatsResponse{
			Breeder:         bs.Breeder,
			TotalAnimals:    bs.TotalAnimals,
			VerifiedAnimals: bs.VerifiedAnimals,
			ReputationScore: bs.ReputationScore,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
