package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/holiday"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/response"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.Service
	location       *time.Location
}

func NewHolidayHandler(holidayService holiday.Service, location *time.Location) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
		location:       location,
	}
}

// Create implements HolidayHandler.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Holiday create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", result)
}

// Delete implements HolidayHandler.
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "id must be a valid UUID", nil)
		return
	}

	if err := h.holidayService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}

// List implements HolidayHandler. Defaults to the current calendar year when
// no range is supplied.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(h.location)
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, h.location)
	end := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, h.location)

	if startParam := r.URL.Query().Get("start_date"); startParam != "" {
		parsed, ok := validator.IsValidDate(startParam)
		if !ok {
			response.BadRequest(w, "start_date must be in YYYY-MM-DD format", nil)
			return
		}
		start = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, h.location)
	}
	if endParam := r.URL.Query().Get("end_date"); endParam != "" {
		parsed, ok := validator.IsValidDate(endParam)
		if !ok {
			response.BadRequest(w, "end_date must be in YYYY-MM-DD format", nil)
			return
		}
		end = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, h.location)
	}

	entries, err := h.holidayService.List(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	views := make([]holiday.Response, 0, len(entries))
	for _, entry := range entries {
		views = append(views, holiday.Response{
			ID:    entry.ID,
			Label: entry.Label,
			Date:  entry.Date.In(h.location).Format("2006-01-02"),
		})
	}

	response.Success(w, views)
}
