package mongo

import (
	"context"
	"iter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
)

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, newApplicationDocument(app)); err != nil {
		return storeErr("insert application", err)
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter ports.ApplicationFilter) iter.Seq2[*domain.Application, error] {
	query := bson.M{}
	if filter.JobID != "" {
		query["job_id"] = filter.JobID
	}
	if filter.SeekerID != "" {
		query["seeker_id"] = filter.SeekerID
	}

	return func(yield func(*domain.Application, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
		cur, err := r.col.Find(ctx, query, newestFirst("applied_at"))
		if err != nil {
			yield(nil, storeErr("list applications", err))
			return
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var doc applicationDocument
			if err := cur.Decode(&doc); err != nil {
				yield(nil, storeErr("decode application", err))
				return
			}
			if !yield(doc.toDomain(), nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, storeErr("list applications", err))
		}
	}
}
