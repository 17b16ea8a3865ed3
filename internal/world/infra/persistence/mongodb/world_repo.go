package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"IslandKingdoms/internal/world/domain"
)

const (
	slotCollection  = "slot"
	worldCollection = "world"
)

type SlotRepository struct {
	coll *mongo.Collection
}

func NewSlotRepository(db *mongo.Database) *SlotRepository {
	return &SlotRepository{coll: db.Collection(slotCollection)}
}

func (r *SlotRepository) Get(ctx context.Context, id int64) (*domain.Slot, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb slot collection is nil")
	}
	var s domain.Slot
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err == nil {
		return &s, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return nil, err
}

func (r *SlotRepository) Save(ctx context.Context, s *domain.Slot) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb slot collection is nil")
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s, options.Replace().SetUpsert(true))
	return err
}

// ListEmpty 返回一批无主城位快照。抢占前必须在事务里重读。
func (r *SlotRepository) ListEmpty(ctx context.Context, limit int) ([]*domain.Slot, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb slot collection is nil")
	}
	cur, err := r.coll.Find(ctx, bson.M{"owner_player_id": 0},
		options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Slot
	for cur.Next(ctx) {
		var s domain.Slot
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

func (r *SlotRepository) CountEmpty(ctx context.Context) (int64, error) {
	if r == nil || r.coll == nil {
		return 0, errors.New("mongodb slot collection is nil")
	}
	return r.coll.CountDocuments(ctx, bson.M{"owner_player_id": 0})
}

type WorldRepository struct {
	coll *mongo.Collection
}

func NewWorldRepository(db *mongo.Database) *WorldRepository {
	return &WorldRepository{coll: db.Collection(worldCollection)}
}

func (r *WorldRepository) Get(ctx context.Context, id int64) (*domain.World, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb world collection is nil")
	}
	var w domain.World
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err == nil {
		return &w, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return nil, err
}

func (r *WorldRepository) Save(ctx context.Context, w *domain.World) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb world collection is nil")
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": w.ID}, w, options.Replace().SetUpsert(true))
	return err
}
