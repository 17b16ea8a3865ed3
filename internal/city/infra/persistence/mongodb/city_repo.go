package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/city/infra/persistence/model"
)

const defaultCollectionName = "city"

type CityRepository struct {
	coll *mongo.Collection
}

func NewCityRepository(db *mongo.Database) *CityRepository {
	return &CityRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

// Get 返回城市；不存在时返回 (nil, nil)，由应用层决定语义。
// 在事务上下文里调用时读到的是事务视图。
func (r *CityRepository) Get(ctx context.Context, id domain.CityID) (*domain.City, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb city collection is nil")
	}

	var doc model.CityDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == nil {
		return model.DocToCity(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return nil, err
}

func (r *CityRepository) Save(ctx context.Context, c *domain.City) error {
	if c == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb city collection is nil")
	}

	doc := model.CityToDoc(c)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": c.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// ListByPlayer 返回玩家名下的全部城市。
func (r *CityRepository) ListByPlayer(ctx context.Context, playerID domain.PlayerID) ([]*domain.City, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb city collection is nil")
	}

	cur, err := r.coll.Find(ctx, bson.M{"player_id": playerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cities []*domain.City
	for cur.Next(ctx) {
		var doc model.CityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		cities = append(cities, model.DocToCity(doc))
	}
	return cities, cur.Err()
}
