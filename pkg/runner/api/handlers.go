// Package api serves the agenda as a JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/analysis"
	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/logger"
	"tableflip.dev/agenda/pkg/timeutil"
	"tableflip.dev/agenda/pkg/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the agenda routes.
type Handler struct {
	svc *app.Service
	log *zap.Logger
}

// NewHandler creates a handler over svc.
func NewHandler(svc *app.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: logger.OrNop(log)}
}

// RegisterRoutes registers every agenda route on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)
	api.HandleFunc("/items", h.CreateItem).Methods(http.MethodPost)
	api.HandleFunc("/items/{id}", h.GetItem).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", h.UpdateItem).Methods(http.MethodPut)
	api.HandleFunc("/items/{id}", h.DeleteItem).Methods(http.MethodDelete)
	api.HandleFunc("/items/{id}/toggle", h.ToggleItem).Methods(http.MethodPost)
	api.HandleFunc("/days/{date}", h.Day).Methods(http.MethodGet)
	api.HandleFunc("/analysis", h.Analysis).Methods(http.MethodGet)
	api.HandleFunc("/suggestions", h.Suggestions).Methods(http.MethodGet)
	api.HandleFunc("/quote", h.Quote).Methods(http.MethodGet)
}

// DayResponse is one day of the agenda.
type DayResponse struct {
	Date  string      `json:"date"`
	Items []item.Item `json:"items"`
}

// SuggestionsResponse lists the suggestions for a week.
type SuggestionsResponse struct {
	WeekStart   string   `json:"weekStart"`
	Suggestions []string `json:"suggestions"`
}

// QuoteResponse carries today's quote.
type QuoteResponse struct {
	Date  string `json:"date"`
	Quote string `json:"quote"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"items":  len(h.svc.Items(r.Context())),
	})
}

// ListItems returns every item, optionally filtered by ?category= and ?date=.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("date")
	if q != "" {
		d, err := timeutil.ParseDay(q, h.svc.Now())
		if err != nil {
			respondError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		items := h.svc.ItemsForDate(r.Context(), item.FormatDate(d), filter)
		if items == nil {
			items = []item.Item{}
		}
		respondJSON(w, http.StatusOK, items)
		return
	}
	out := make([]item.Item, 0)
	for _, it := range h.svc.Items(r.Context()) {
		if filter.Match(it.Category) {
			out = append(out, it)
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateItem stores a new item from an item.Fields body.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var f item.Fields
	if !decode(w, r, &f) {
		return
	}
	it, err := h.svc.Create(r.Context(), f)
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, it)
}

// GetItem returns one item.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Find(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// UpdateItem replaces the editable fields of an item.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var f item.Fields
	if !decode(w, r, &f) {
		return
	}
	it, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], f)
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// DeleteItem removes an item and returns it.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// ToggleItem flips completion.
func (h *Handler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Toggle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// Day lists one day's items in display order.
func (h *Handler) Day(w http.ResponseWriter, r *http.Request) {
	d, err := timeutil.ParseDay(mux.Vars(r)["date"], h.svc.Now())
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}
	date := item.FormatDate(d)
	items := h.svc.ItemsForDate(r.Context(), date, filter)
	if items == nil {
		items = []item.Item{}
	}
	respondJSON(w, http.StatusOK, DayResponse{Date: date, Items: items})
}

// Analysis returns the weekly analysis for the week of ?date= (today by
// default).
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	d, ok := h.date(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, analysis.Analyze(h.svc.Items(r.Context()), d))
}

// Suggestions returns the planning suggestions for the week of ?date=.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	d, ok := h.date(w, r)
	if !ok {
		return
	}
	list := analysis.Suggest(h.svc.Items(r.Context()), d, h.svc.Locale())
	if list == nil {
		list = []string{}
	}
	respondJSON(w, http.StatusOK, SuggestionsResponse{
		WeekStart:   item.FormatDate(calendar.WeekStart(d)),
		Suggestions: list,
	})
}

// Quote returns today's quote.
func (h *Handler) Quote(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, QuoteResponse{
		Date:  item.FormatDate(h.svc.Now()),
		Quote: h.svc.Quote(),
	})
}

func (h *Handler) date(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	q := strings.TrimSpace(r.URL.Query().Get("date"))
	if q == "" {
		return item.Midnight(h.svc.Now()), true
	}
	d, err := timeutil.ParseDay(q, h.svc.Now())
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return time.Time{}, false
	}
	return d, true
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) (category.Filter, bool) {
	f, err := category.ParseFilter(r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return f, false
	}
	return f, true
}

// fail maps service errors onto status codes.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var fields validation.FieldErrors
	switch {
	case errors.As(err, &fields):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Fields:  fields,
		})
	case errors.Is(err, app.ErrInvalid):
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, app.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		h.log.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "the agenda could not be updated")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, errorType, message string) {
	respondJSON(w, status, ErrorResponse{Error: errorType, Message: message})
}
