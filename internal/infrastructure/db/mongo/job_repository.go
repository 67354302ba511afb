package mongo

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
)

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

var _ ports.JobRepository = (*JobRepository)(nil)

// Create inserts a new job document.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	doc, err := newJobDocument(job)
	if err != nil {
		return storeErr("encode job", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return storeErr("insert job", err)
	}
	return nil
}

// FindByID retrieves a job by id.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("job: %w", domain.ErrNotFound)
		}
		return nil, storeErr("find job", err)
	}
	job, err := doc.toDomain()
	if err != nil {
		return nil, storeErr("decode job", err)
	}
	return job, nil
}

// List streams matching jobs newest first from a cursor opened on each range.
func (r *JobRepository) List(ctx context.Context, filter ports.JobFilter) iter.Seq2[*domain.Job, error] {
	query := bson.M{}
	if filter.PosterID != "" {
		query["poster_id"] = filter.PosterID
	}

	return func(yield func(*domain.Job, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
		cur, err := r.col.Find(ctx, query, newestFirst("created_at"))
		if err != nil {
			yield(nil, storeErr("list jobs", err))
			return
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var doc jobDocument
			if err := cur.Decode(&doc); err != nil {
				yield(nil, storeErr("decode job", err))
				return
			}
			job, err := doc.toDomain()
			if err != nil {
				yield(nil, storeErr("decode job", err))
				return
			}
			if !yield(job, nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, storeErr("list jobs", err))
		}
	}
}

// Delete removes the job. Only one of several concurrent deletes observes a
// removed document; the rest get domain.ErrNotFound.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete job", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("job: %w", domain.ErrNotFound)
	}
	return nil
}
