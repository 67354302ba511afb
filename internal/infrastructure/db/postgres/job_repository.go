package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
)

const selectJobs = `SELECT id, poster_id, title, company, location, job_type,
	comp_text, COALESCE(comp_amount::text, ''), comp_currency, comp_period,
	contact, description, created_at FROM jobs`

type JobRepository struct {
	db DB
}

func NewJobRepository(db DB) *JobRepository {
	return &JobRepository{db: db}
}

var _ ports.JobRepository = (*JobRepository)(nil)

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	var amount *string
	if job.Compensation.Amount != nil {
		s := job.Compensation.Amount.String()
		amount = &s
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, poster_id, title, company, location, job_type,
			comp_text, comp_amount, comp_currency, comp_period,
			contact, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10, $11, $12, $13)`,
		job.ID, job.PosterID, job.Title, job.Company, job.Location, string(job.Type),
		job.Compensation.Text, amount, job.Compensation.Currency, string(job.Compensation.Period),
		job.Contact, job.Description, job.CreatedAt.UTC(),
	)
	if err != nil {
		return storeErr("insert job", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	job, err := scanJob(r.db.QueryRow(ctx, selectJobs+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job: %w", domain.ErrNotFound)
		}
		return nil, storeErr("find job", err)
	}
	return job, nil
}

// List runs the query each time the sequence is ranged over.
func (r *JobRepository) List(ctx context.Context, filter ports.JobFilter) iter.Seq2[*domain.Job, error] {
	query := selectJobs
	var args []any
	if filter.PosterID != "" {
		query += ` WHERE poster_id = $1`
		args = append(args, filter.PosterID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	return func(yield func(*domain.Job, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			yield(nil, storeErr("list jobs", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			job, err := scanJob(rows)
			if err != nil {
				yield(nil, storeErr("scan job", err))
				return
			}
			if !yield(job, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, storeErr("list jobs", err))
		}
	}
}

// Delete removes the job; zero affected rows means someone else got there
// first or it never existed.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete job", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job: %w", domain.ErrNotFound)
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		j                    domain.Job
		jobType, amount, per string
	)
	err := row.Scan(
		&j.ID, &j.PosterID, &j.Title, &j.Company, &j.Location, &jobType,
		&j.Compensation.Text, &amount, &j.Compensation.Currency, &per,
		&j.Contact, &j.Description, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Type = domain.JobType(jobType)
	j.Compensation.Period = domain.PayPeriod(per)
	j.CreatedAt = j.CreatedAt.UTC()
	if amount != "" {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		j.Compensation.Amount = &d
	}
	return &j, nil
}
