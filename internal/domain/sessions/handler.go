package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", createSessionHandler(svc))

		sr.Route("/{sessionID}", func(one chi.Router) {
			one.Get("/", getSessionHandler(svc))
			one.Delete("/", deleteSessionHandler(svc))

			// Input del widget (cada cambio del texto)
			one.Put("/query", setQueryHandler(svc))

			// Botones de orden
			one.Post("/sort", sortHandler(svc))

			// Push de snapshots por WebSocket
			one.Get("/stream", streamHandler(svc, log))
		})
	})
}

type setQueryRequest struct {
	Query string `json:"query"`
}

type sortRequest struct {
	Key string `json:"key" enums:"name,weight.metric,life_span"`
}

type weightResponse struct {
	Metric   string `json:"metric"`
	Imperial string `json:"imperial"`
}

type imageResponse struct {
	ID     string `json:"id,omitempty"`
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// BreedResponse es una raza ya enriquecida con su imagen (si hay). Es la forma
// JSON compartida por la API y por `catsearch search --json`.
type BreedResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Origin       string          `json:"origin"`
	Temperament  string          `json:"temperament"`
	LifeSpan     string          `json:"life_span"`
	Weight       *weightResponse `json:"weight,omitempty"`
	AltNames     string          `json:"alt_names,omitempty"`
	WikipediaURL string          `json:"wikipedia_url,omitempty"`
	Image        *imageResponse  `json:"image,omitempty"`
}

type sortStateResponse struct {
	Key       breeds.SortKey   `json:"key"`
	Direction breeds.Direction `json:"direction"`
}

// snapshotResponse es el estado completo del widget devuelto por la API.
type snapshotResponse struct {
	ID        string            `json:"id"`
	Query     string            `json:"query"`
	Pending   bool              `json:"pending"`
	Loading   bool              `json:"loading"`
	Error     string            `json:"error,omitempty"`
	Sort      sortStateResponse `json:"sort"`
	Results   []BreedResponse   `json:"results"`
	Revision  uint64            `json:"revision"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// createSessionHandler godoc
// @Summary Crear sesión de búsqueda
// @Description Crea un widget de búsqueda nuevo (query vacío, sin resultados, orden inicial asc sin clave).
// @Tags sessions
// @Produce json
// @Success 201 {object} snapshotResponse
// @Failure 500 {string} string "internal error"
// @Router /sessions [post]
func createSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Create(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toSnapshotResponse(sess.Snapshot()))
	}
}

// getSessionHandler godoc
// @Summary Estado de la sesión
// @Description Devuelve query, loading, error, orden y resultados actuales.
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} snapshotResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [get]
func getSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toSnapshotResponse(sess.Snapshot()))
	}
}

// setQueryHandler godoc
// @Summary Actualizar el texto de búsqueda
// @Description Equivale a un cambio del input. Con 3+ caracteres arma un fetch que corre tras 1s sin cambios; cualquier fetch pendiente se cancela.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body setQueryRequest true "Texto actual del input"
// @Success 202 {object} snapshotResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/query [put]
func setQueryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setQueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		snap, err := svc.SetQuery(r.Context(), chi.URLParam(r, "sessionID"), req.Query)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, toSnapshotResponse(snap))
	}
}

// sortHandler godoc
// @Summary Ordenar resultados
// @Description Reordena los resultados ya obtenidos. Repetir la misma clave invierte la dirección; otra clave arranca ascendente.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body sortRequest true "Clave de orden"
// @Success 200 {object} snapshotResponse
// @Failure 400 {string} string "invalid json / unknown sort key"
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/sort [post]
func sortHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sortRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		key, err := breeds.ParseSortKey(req.Key)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		snap, err := svc.Sort(r.Context(), chi.URLParam(r, "sessionID"), key)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSnapshotResponse(snap))
	}
}

// deleteSessionHandler godoc
// @Summary Cerrar sesión
// @Description Cancela el debounce y cualquier fetch en vuelo y libera la sesión.
// @Tags sessions
// @Param sessionID path string true "ID de la sesión"
// @Success 204
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [delete]
func deleteSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			writeSessionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrClosed):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, breeds.ErrUnknownSortKey):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toSnapshotResponse(s Snapshot) snapshotResponse {
	out := snapshotResponse{
		ID:      s.ID,
		Query:   s.Query,
		Pending: s.Pending,
		Loading: s.Loading,
		Error:   s.Error,
		Sort: sortStateResponse{
			Key:       s.Sort.Key,
			Direction: s.Sort.Direction,
		},
		Results:   ToBreedResponses(s.Results),
		Revision:  s.Revision,
		UpdatedAt: s.UpdatedAt,
	}
	return out
}

// ToBreedResponses nunca devuelve nil: una lista vacía se serializa como [].
func ToBreedResponses(items []breeds.EnrichedBreed) []BreedResponse {
	out := make([]BreedResponse, 0, len(items))
	for _, b := range items {
		out = append(out, toBreedResponse(b))
	}
	return out
}

func toBreedResponse(b breeds.EnrichedBreed) BreedResponse {
	out := BreedResponse{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		Origin:       b.Origin,
		Temperament:  b.Temperament,
		LifeSpan:     b.LifeSpan,
		AltNames:     b.AltNames,
		WikipediaURL: b.WikipediaURL,
	}
	if b.Weight != nil {
		out.Weight = &weightResponse{Metric: b.Weight.Metric, Imperial: b.Weight.Imperial}
	}
	if b.Image != nil {
		out.Image = &imageResponse{
			ID:     b.Image.ID,
			URL:    b.Image.URL,
			Width:  b.Image.Width,
			Height: b.Image.Height,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
