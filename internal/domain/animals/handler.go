package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"animint/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", registerAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))

		ar.Get("/by-owner/{identity}", listByOwnerHandler(svc))
		ar.Get("/by-breeder/{identity}", listByBreederHandler(svc))

		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Get("/{animalID}/lineage", lineageHandler(svc))
		ar.Post("/{animalID}/transfer", transferOwnershipHandler(svc))
		ar.Post("/{animalID}/verify", verifyAnimalHandler(svc))
	})

	r.Get("/microchips/{chip}", verifyMicrochipHandler(svc))

	r.Route("/litters", func(lr chi.Router) {
		lr.Post("/", registerLitterHandler(svc))
		lr.Get("/", listLittersHandler(svc))
		lr.Get("/{litterID}", getLitterHandler(svc))
	})
}

type registerAnimalRequest struct {
	MicrochipID string  `json:"microchip_id"`
	Species     string  `json:"species"`
	Breed       string  `json:"breed"`
	Name        string  `json:"name"`
	Sire        *string `json:"sire,omitempty"`
	Dam         *string `json:"dam,omitempty"`
	DNAHash     *string `json:"dna_hash,omitempty"`
}

type registerLitterRequest struct {
	Sire      string   `json:"sire"`
	Dam       string   `json:"dam"`
	Offspring []string `json:"offspring"`
}

type transferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

type animalResponse struct {
	ID          string    `json:"id"`
	MicrochipID string    `json:"microchip_id"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed"`
	Name        string    `json:"name"`
	Owner       string    `json:"owner"`
	Breeder     string    `json:"breeder"`
	Sire        *string   `json:"sire,omitempty"`
	Dam         *string   `json:"dam,omitempty"`
	DNAHash     *string   `json:"dna_hash,omitempty"`
	BirthDate   time.Time `json:"birth_date"`
	Verified    bool      `json:"verified"`
}

type litterResponse struct {
	ID        string    `json:"id"`
	Sire      string    `json:"sire"`
	Dam       string    `json:"dam"`
	Offspring []string  `json:"offspring"`
	Breeder   string    `json:"breeder"`
	BirthDate time.Time `json:"birth_date"`
}

func registerAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Identity) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.RegisterAnimal(r.Context(), claims.Identity, RegisterAnimalInput{
			MicrochipID: req.MicrochipID,
			Species:     req.Species,
			Breed:       req.Breed,
			Name:        req.Name,
			Sire:        req.Sire,
			Dam:         req.Dam,
			DNAHash:     req.DNAHash,
		})
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

func listByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "identity"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

func listByBreederHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByBreeder(r.Context(), chi.URLParam(r, "identity"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeAnimalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func lineageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chain, err := svc.Lineage(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeAnimalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(chain))
	}
}

func transferOwnershipHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Identity) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req transferOwnershipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		err := svc.TransferOwnership(r.Context(), claims.Identity, chi.URLParam(r, "animalID"), req.NewOwner)
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func verifyAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Identity) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.VerifyAnimal(r.Context(), claims.Identity, chi.URLParam(r, "animalID"))
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func verifyMicrochipHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, found, err := svc.VerifyMicrochip(r.Context(), chi.URLParam(r, "chip"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, "microchip not registered", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"animal_id": id})
	}
}

func registerLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Identity) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerLitterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		l, err := svc.RegisterLitter(r.Context(), claims.Identity, req.Sire, req.Dam, req.Offspring)
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toLitterResponse(l))
	}
}

func listLittersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListLitters(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]litterResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLitterResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.GetLitter(r.Context(), chi.URLParam(r, "litterID"))
		if err != nil {
			writeAnimalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLitterResponse(l))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:          a.ID,
		MicrochipID: a.MicrochipID,
		Species:     a.Species,
		Breed:       a.Breed,
		Name:        a.Name,
		Owner:       a.Owner,
		Breeder:     a.Breeder,
		Sire:        a.Sire,
		Dam:         a.Dam,
		DNAHash:     a.DNAHash,
		BirthDate:   a.BirthDate,
		Verified:    a.Verified,
	}
}

func toAnimalResponses(items []Animal) []animalResponse {
	out := make([]animalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnimalResponse(a))
	}
	return out
}

func toLitterResponse(l Litter) litterResponse {
	return litterResponse{
		ID:        l.ID,
		Sire:      l.Sire,
		Dam:       l.Dam,
		Offspring: l.Offspring,
		Breeder:   l.Breeder,
		BirthDate: l.BirthDate,
	}
}

func writeAnimalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrLitterNotFound), errors.Is(err, ErrUnknownParent):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicateMicrochip):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrNotAuthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrParentMismatch),
		errors.Is(err, ErrOffspringMismatch),
		errors.Is(err, ErrEmptyLitter):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
