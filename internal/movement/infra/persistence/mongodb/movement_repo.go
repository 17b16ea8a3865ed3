package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"IslandKingdoms/internal/movement/domain"
	"IslandKingdoms/internal/movement/infra/persistence/model"
)

const (
	movementCollection      = "movement"
	reinforcementCollection = "reinforcement"
)

type MovementRepository struct {
	coll *mongo.Collection
}

func NewMovementRepository(db *mongo.Database) *MovementRepository {
	return &MovementRepository{coll: db.Collection(movementCollection)}
}

func (r *MovementRepository) Get(ctx context.Context, id int64) (*domain.Movement, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb movement collection is nil")
	}
	var m domain.Movement
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == nil {
		return &m, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return nil, err
}

func (r *MovementRepository) Insert(ctx context.Context, m *domain.Movement) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb movement collection is nil")
	}
	_, err := r.coll.InsertOne(ctx, m)
	return err
}

func (r *MovementRepository) Update(ctx context.Context, m *domain.Movement) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb movement collection is nil")
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	return err
}

func (r *MovementRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb movement collection is nil")
	}
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListByPlayer 按出发时间顺序返回玩家在途的全部行军。
func (r *MovementRepository) ListByPlayer(ctx context.Context, playerID int64) ([]*domain.Movement, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb movement collection is nil")
	}
	cur, err := r.coll.Find(ctx, bson.M{"player_id": playerID},
		options.Find().SetSort(bson.D{{Key: "departure_time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Movement
	for cur.Next(ctx) {
		var m domain.Movement
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, cur.Err()
}

type ReinforcementRepository struct {
	coll *mongo.Collection
}

func NewReinforcementRepository(db *mongo.Database) *ReinforcementRepository {
	return &ReinforcementRepository{coll: db.Collection(reinforcementCollection)}
}

func (r *ReinforcementRepository) Get(ctx context.Context, targetCityID int64) (*domain.ReinforcementLedger, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb reinforcement collection is nil")
	}
	var doc model.ReinforcementDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": targetCityID}).Decode(&doc)
	if err == nil {
		return model.DocToLedger(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return nil, err
}

func (r *ReinforcementRepository) Save(ctx context.Context, l *domain.ReinforcementLedger) error {
	if l == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb reinforcement collection is nil")
	}
	doc := model.LedgerToDoc(l)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": l.TargetCityID}, doc,
		options.Replace().SetUpsert(true))
	return err
}
