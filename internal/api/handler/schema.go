package handler

import (
	"time"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
)

// --- Requests ---

type registerRequest struct {
	Email       string `json:"email"        validate:"max=254"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:       r.Email,
		Password:    r.Password,
		Role:        r.Role,
		DisplayName: r.DisplayName,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type compensationRequest struct {
	Text     string `json:"text"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
}

type createJobRequest struct {
	Title        string              `json:"title"`
	Company      string              `json:"company"`
	Location     string              `json:"location"`
	JobType      string              `json:"job_type"`
	Compensation compensationRequest `json:"compensation"`
	Contact      string              `json:"contact"`
	Description  string              `json:"description"`
}

func (r createJobRequest) toInput() ports.JobInput {
	return ports.JobInput{
		Title:    r.Title,
		Company:  r.Company,
		Location: r.Location,
		Type:     r.JobType,
		Compensation: ports.CompensationInput{
			Text:     r.Compensation.Text,
			Amount:   r.Compensation.Amount,
			Currency: r.Compensation.Currency,
			Period:   r.Compensation.Period,
		},
		Contact:     r.Contact,
		Description: r.Description,
	}
}

type applyRequest struct {
	Message string `json:"message"`
}

// --- Responses ---

type sessionResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresAt time.Time   `json:"expires_at"`
	UserID    string      `json:"user_id"`
	Role      domain.Role `json:"role"`
}

func newSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		Token:     s.Token,
		TokenType: "Bearer",
		ExpiresAt: s.ExpiresAt,
		UserID:    s.UserID,
		Role:      s.Role,
	}
}

// listResponse wraps collection results so the envelope can grow without
// breaking clients.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newListResponse[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}
