package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"IslandKingdoms/internal/alliance/domain"
)

const allianceCollection = "alliance"

type AllianceRepository struct {
	coll *mongo.Collection
}

func NewAllianceRepository(db *mongo.Database) *AllianceRepository {
	return &AllianceRepository{coll: db.Collection(allianceCollection)}
}

func (r *AllianceRepository) Get(ctx context.Context, id domain.AllianceID) (*domain.Alliance, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb alliance collection is nil")
	}
	var a domain.Alliance
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == nil {
		return &a, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return nil, err
}

func (r *AllianceRepository) Save(ctx context.Context, a *domain.Alliance) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb alliance collection is nil")
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a, options.Replace().SetUpsert(true))
	return err
}
