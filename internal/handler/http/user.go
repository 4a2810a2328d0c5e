package http

import (
	"net/http"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userRepository user.Repository
}

func NewUserHandler(userRepository user.Repository) UserHandler {
	return &userHandlerImpl{
		userRepository: userRepository,
	}
}

type userView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// List implements UserHandler. superAdmin accounts are never listed.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepository.List(r.Context(), false)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, usr := range users {
		views = append(views, userView{
			ID:         usr.ID,
			Name:       usr.Name,
			Email:      usr.Email,
			Role:       string(usr.Role),
			Department: usr.Department,
		})
	}

	response.Success(w, views)
}
