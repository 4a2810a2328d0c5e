package holiday

import (
	"context"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	HolidayRepository holiday.Repository
	Location          *time.Location
}

func NewHolidayService(holidayRepo holiday.Repository, location *time.Location) holiday.Service {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepo,
		Location:          location,
	}
}

// Create implements holiday.Service.
func (h *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateRequest) (holiday.Response, error) {
	if err := req.Validate(); err != nil {
		return holiday.Response{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, h.Location)
	if err != nil {
		return holiday.Response{}, err
	}

	created, err := h.HolidayRepository.Create(ctx, holiday.Entry{
		Label: req.Label,
		Date:  date,
	})
	if err != nil {
		return holiday.Response{}, err
	}

	return holiday.Response{
		ID:    created.ID,
		Label: created.Label,
		Date:  created.Date.In(h.Location).Format("2006-01-02"),
	}, nil
}

// Delete implements holiday.Service.
func (h *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	return h.HolidayRepository.Delete(ctx, id)
}

// List implements holiday.Service.
func (h *HolidayServiceImpl) List(ctx context.Context, start, end time.Time) ([]holiday.Entry, error) {
	return h.HolidayRepository.ListRange(ctx, start, end)
}

// IsHoliday implements holiday.Service.
func (h *HolidayServiceImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	local := date.In(h.Location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, h.Location)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	entry, err := h.HolidayRepository.GetByDate(ctx, dayStart, dayEnd)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}
