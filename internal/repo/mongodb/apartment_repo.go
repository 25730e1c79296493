package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentloft/rentloft-api/internal/domain"
)

type ApartmentRepository interface {
	Insert(ctx context.Context, apartment *domain.Apartment) (*domain.Apartment, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Apartment, error)
	List(ctx context.Context) ([]domain.Apartment, error)
	ListByRentRange(ctx context.Context, min, max int64) ([]domain.Apartment, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (bool, error)
}

type apartmentRepository struct {
	coll *mongo.Collection
}

func NewApartmentRepository(store *Store) ApartmentRepository {
	return &apartmentRepository{coll: store.collection("apartments")}
}

func (r *apartmentRepository) Insert(ctx context.Context, apartment *domain.Apartment) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	apartment.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, apartment)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		apartment.ID = id
	}
	return apartment, nil
}

func (r *apartmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var a domain.Apartment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *apartmentRepository) List(ctx context.Context) ([]domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	apartments := []domain.Apartment{}
	if err := cur.All(ctx, &apartments); err != nil {
		return nil, err
	}
	return apartments, nil
}

func (r *apartmentRepository) ListByRentRange(ctx context.Context, min, max int64) ([]domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"rent": bson.M{"$gte": min, "$lte": max}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	apartments := []domain.Apartment{}
	if err := cur.All(ctx, &apartments); err != nil {
		return nil, err
	}
	return apartments, nil
}

func (r *apartmentRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"available": available}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
