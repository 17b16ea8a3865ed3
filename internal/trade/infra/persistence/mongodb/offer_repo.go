package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"IslandKingdoms/internal/trade/domain"
)

const offerCollection = "trade_offer"

type OfferRepository struct {
	coll *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{coll: db.Collection(offerCollection)}
}

func (r *OfferRepository) Get(ctx context.Context, id string) (*domain.Offer, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb trade_offer collection is nil")
	}
	var o domain.Offer
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err == nil {
		return &o, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return nil, err
}

func (r *OfferRepository) Insert(ctx context.Context, o *domain.Offer) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb trade_offer collection is nil")
	}
	_, err := r.coll.InsertOne(ctx, o)
	return err
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb trade_offer collection is nil")
	}
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List 按挂单时间返回整个交易所。
func (r *OfferRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb trade_offer collection is nil")
	}
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Offer
	for cur.Next(ctx) {
		var o domain.Offer
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	return out, cur.Err()
}
