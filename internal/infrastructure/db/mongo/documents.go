package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	DisplayName  string    `bson:"display_name,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		DisplayName:  u.DisplayName,
		CreatedAt:    u.CreatedAt.UTC(),
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		DisplayName:  d.DisplayName,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type compensationDocument struct {
	Text     string                `bson:"text,omitempty"`
	Amount   *primitive.Decimal128 `bson:"amount,omitempty"`
	Currency string                `bson:"currency,omitempty"`
	Period   string                `bson:"period,omitempty"`
}

type jobDocument struct {
	ID           string               `bson:"_id"`
	PosterID     string               `bson:"poster_id"`
	Title        string               `bson:"title"`
	Company      string               `bson:"company,omitempty"`
	Location     string               `bson:"location,omitempty"`
	Type         string               `bson:"job_type,omitempty"`
	Compensation compensationDocument `bson:"compensation"`
	Contact      string               `bson:"contact"`
	Description  string               `bson:"description"`
	CreatedAt    time.Time            `bson:"created_at"`
}

func newJobDocument(j *domain.Job) (jobDocument, error) {
	doc := jobDocument{
		ID:          j.ID,
		PosterID:    j.PosterID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Type:        string(j.Type),
		Contact:     j.Contact,
		Description: j.Description,
		CreatedAt:   j.CreatedAt.UTC(),
		Compensation: compensationDocument{
			Text:     j.Compensation.Text,
			Currency: j.Compensation.Currency,
			Period:   string(j.Compensation.Period),
		},
	}
	if j.Compensation.Amount != nil {
		amount, err := primitive.ParseDecimal128(j.Compensation.Amount.String())
		if err != nil {
			return doc, err
		}
		doc.Compensation.Amount = &amount
	}
	return doc, nil
}

func (d jobDocument) toDomain() (*domain.Job, error) {
	job := &domain.Job{
		ID:          d.ID,
		PosterID:    d.PosterID,
		Title:       d.Title,
		Company:     d.Company,
		Location:    d.Location,
		Type:        domain.JobType(d.Type),
		Contact:     d.Contact,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
		Compensation: domain.Compensation{
			Text:     d.Compensation.Text,
			Currency: d.Compensation.Currency,
			Period:   domain.PayPeriod(d.Compensation.Period),
		},
	}
	if d.Compensation.Amount != nil {
		amount, err := decimal.NewFromString(d.Compensation.Amount.String())
		if err != nil {
			return nil, err
		}
		job.Compensation.Amount = &amount
	}
	return job, nil
}

type applicationDocument struct {
	ID        string    `bson:"_id"`
	JobID     string    `bson:"job_id"`
	SeekerID  string    `bson:"seeker_id"`
	Message   string    `bson:"message,omitempty"`
	AppliedAt time.Time `bson:"applied_at"`
}

func newApplicationDocument(a *domain.Application) applicationDocument {
	return applicationDocument{
		ID:        a.ID,
		JobID:     a.JobID,
		SeekerID:  a.SeekerID,
		Message:   a.Message,
		AppliedAt: a.AppliedAt.UTC(),
	}
}

func (d applicationDocument) toDomain() *domain.Application {
	return &domain.Application{
		ID:        d.ID,
		JobID:     d.JobID,
		SeekerID:  d.SeekerID,
		Message:   d.Message,
		AppliedAt: d.AppliedAt.UTC(),
	}
}
