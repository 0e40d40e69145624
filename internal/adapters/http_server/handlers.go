package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/toniju98/AirBnbAnalyzer/internal/app"
	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// maxUploadBytes bounds one multipart upload batch.
const maxUploadBytes = 64 << 20

type Handlers struct {
	Q *app.QueryService
	U *app.UploadService
	// MaxEvents caps one calendar events response.
	MaxEvents int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/market", h.market)
	s.mux.Get("/v1/occupancy", h.occupancy)
	s.mux.Get("/v1/reviews/patterns", h.reviewPatterns)
	s.mux.Get("/v1/reviews/insights", h.reviewInsights)
	s.mux.Get("/v1/pricing/optimal", h.optimalPricing)
	s.mux.Get("/v1/amenities", h.amenities)
	s.mux.Get("/v1/calendar/events", h.calendarEvents)
	s.mux.Post("/v1/uploads", h.upload)
	s.mux.Get("/v1/uploads/{id}/bookings", h.uploadBookings)
	s.mux.Get("/v1/uploads/{id}/revenue", h.uploadRevenue)
	s.mux.Get("/v1/uploads/{id}/pricing", h.uploadPricing)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoListings):
		writeProblem(w, http.StatusNotFound, "Not Found", "listings dataset unavailable")
	case errors.Is(err, domain.ErrNoDataset):
		writeProblem(w, http.StatusNotFound, "Not Found", "uploaded dataset not found")
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// writeReport handles the common report outcome: an error maps to a
// problem response, a nil report means the analysis had no input data.
func writeReport[T any](w http.ResponseWriter, r *http.Request, rep *T, err error) {
	if err != nil {
		writeQueryError(w, err)
		return
	}
	if rep == nil {
		writeProblem(w, http.StatusNotFound, "No Data", "no data available for this analysis")
		return
	}
	writeJSON(w, r, rep)
}

func (h *Handlers) market(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Q.Market(r.Context())
	writeReport(w, r, rep, err)
}

func (h *Handlers) occupancy(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Q.Occupancy(r.Context())
	writeReport(w, r, rep, err)
}

func (h *Handlers) reviewPatterns(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Q.ReviewPatterns(r.Context())
	writeReport(w, r, rep, err)
}

func (h *Handlers) reviewInsights(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Q.ReviewInsights(r.Context())
	writeReport(w, r, rep, err)
}

func (h *Handlers) optimalPricing(w http.ResponseWriter, r *http.Request) {
	neighbourhood := r.URL.Query().Get("neighbourhood")
	roomType := r.URL.Query().Get("room_type")
	rep, err := h.Q.OptimalPricing(r.Context(), neighbourhood, roomType)
	writeReport(w, r, rep, err)
}

func (h *Handlers) amenities(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Q.Amenities(r.Context())
	writeReport(w, r, rep, err)
}

func (h *Handlers) calendarEvents(w http.ResponseWriter, r *http.Request) {
	var listingID *int64
	if raw := r.URL.Query().Get("listing_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid listing_id", "listing_id must be a number")
			return
		}
		listingID = &id
	}

	// 0 lets the engine pick its context-dependent default cap
	// (market-wide vs single-listing). An explicit max is clamped to
	// the configured ceiling.
	maxEvents := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid max", "max must be a positive integer")
			return
		}
		if m > h.MaxEvents {
			m = h.MaxEvents
		}
		maxEvents = m
	}

	events, err := h.Q.CalendarEvents(r.Context(), listingID, maxEvents)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, r, events)
}

type uploadResponse struct {
	ID           string   `json:"id"`
	Rows         int      `json:"rows"`
	Columns      []string `json:"columns"`
	DateColumns  []string `json:"date_columns"`
	PriceColumns []string `json:"price_columns"`
}

func (h *Handlers) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Upload", "expected multipart form data")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var files []app.UploadFile
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Upload", "unreadable file "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Upload", "unreadable file "+fh.Filename)
			return
		}
		files = append(files, app.UploadFile{Name: fh.Filename, Data: data})
	}
	if len(files) == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid Upload", "no files supplied under field \"files\"")
		return
	}

	ds, err := h.U.Ingest(r.Context(), files)
	if err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Ingest Failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	resp := uploadResponse{
		ID:           ds.ID,
		Rows:         len(ds.Records),
		Columns:      ds.Columns,
		DateColumns:  ds.DateColumns,
		PriceColumns: ds.PriceColumns,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("failed to write upload response")
	}
}

func (h *Handlers) uploadBookings(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Q.UploadBookings(r.Context(), chi.URLParam(r, "id"))
	writeReport(w, r, rep, err)
}

func (h *Handlers) uploadRevenue(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Q.UploadRevenue(r.Context(), chi.URLParam(r, "id"))
	writeReport(w, r, rep, err)
}

func (h *Handlers) uploadPricing(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Q.UploadPricing(r.Context(), chi.URLParam(r, "id"))
	writeReport(w, r, rep, err)
}
