package postgres

import (
	"context"
	"fmt"
	"iter"

	"github.com/jackc/pgx/v5"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
)

type ApplicationRepository struct {
	db DB
}

func NewApplicationRepository(db DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, seeker_id, message, applied_at) VALUES ($1, $2, $3, $4, $5)`,
		app.ID, app.JobID, app.SeekerID, app.Message, app.AppliedAt.UTC(),
	)
	if err != nil {
		return storeErr("insert application", err)
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter ports.ApplicationFilter) iter.Seq2[*domain.Application, error] {
	query := `SELECT id, job_id, seeker_id, message, applied_at FROM applications WHERE true`
	var args []any
	if filter.JobID != "" {
		args = append(args, filter.JobID)
		query += fmt.Sprintf(` AND job_id = $%d`, len(args))
	}
	if filter.SeekerID != "" {
		args = append(args, filter.SeekerID)
		query += fmt.Sprintf(` AND seeker_id = $%d`, len(args))
	}
	query += ` ORDER BY applied_at DESC, id DESC`

	return func(yield func(*domain.Application, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			yield(nil, storeErr("list applications", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			app, err := scanApplication(rows)
			if err != nil {
				yield(nil, storeErr("scan application", err))
				return
			}
			if !yield(app, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, storeErr("list applications", err))
		}
	}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.SeekerID, &a.Message, &a.AppliedAt); err != nil {
		return nil, err
	}
	a.AppliedAt = a.AppliedAt.UTC()
	return &a, nil
}
