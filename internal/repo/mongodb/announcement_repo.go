package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentloft/rentloft-api/internal/domain"
)

type AnnouncementRepository interface {
	Insert(ctx context.Context, announcement *domain.Announcement) (*domain.Announcement, error)
	List(ctx context.Context) ([]domain.Announcement, error)
}

type announcementRepository struct {
	coll *mongo.Collection
}

func NewAnnouncementRepository(store *Store) AnnouncementRepository {
	return &announcementRepository{coll: store.collection("announcements")}
}

func (r *announcementRepository) Insert(ctx context.Context, announcement *domain.Announcement) (*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	announcement.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, announcement)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		announcement.ID = id
	}
	return announcement, nil
}

func (r *announcementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	announcements := []domain.Announcement{}
	if err := cur.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}
