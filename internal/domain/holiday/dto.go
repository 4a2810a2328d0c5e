package holiday

import (
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Label string `json:"label"`
	Date  string `json:"date"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{
			Field:   "label",
			Message: "label is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Date  string `json:"date"`
}
