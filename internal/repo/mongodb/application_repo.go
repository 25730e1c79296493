package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentloft/rentloft-api/internal/domain"
)

type ApplicationRepository interface {
	// InsertIfAbsent inserts the application unless one already exists
	// for the same email, as a single conditional write. The filter is
	// keyed on email only, regardless of status: a previously decided
	// application still blocks a new one.
	InsertIfAbsent(ctx context.Context, app *domain.Application) (inserted bool, err error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Application, error)
	FindByEmail(ctx context.Context, email string) (*domain.Application, error)
	List(ctx context.Context) ([]domain.Application, error)
	Decide(ctx context.Context, id primitive.ObjectID, approved bool, acceptDate string) (bool, error)
}

type applicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(store *Store) ApplicationRepository {
	return &applicationRepository{coll: store.collection("apartmentRent")}
}

func (r *applicationRepository) InsertIfAbsent(ctx context.Context, app *domain.Application) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	app.Status = domain.ApplicationPending
	app.CreatedAt = time.Now()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": app.Email},
		bson.M{"$setOnInsert": app},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	if res.UpsertedID == nil {
		return false, nil
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		app.ID = id
	}
	return true, nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var a domain.Application
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepository) FindByEmail(ctx context.Context, email string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var a domain.Application
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepository) List(ctx context.Context) ([]domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	apps := []domain.Application{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) Decide(ctx context.Context, id primitive.ObjectID, approved bool, acceptDate string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	set := bson.M{
		"status":   domain.ApplicationChecked,
		"approved": approved,
	}
	if acceptDate != "" {
		set["accept_date"] = acceptDate
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
