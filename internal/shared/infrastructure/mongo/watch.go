package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"IslandKingdoms/internal/shared/observer"
)

// Watcher 把一个集合的 change stream 转成 observer.Hub 上的快照事件。
// 这是"快照监听"契约的实现：所有客户端看到的活动状态都以这里推出的为准。
type Watcher struct {
	db  *mongo.Database
	hub *observer.Hub
	log *zap.Logger
}

func NewWatcher(db *mongo.Database, hub *observer.Hub, l *zap.Logger) *Watcher {
	if l == nil {
		l = zap.NewNop()
	}
	return &Watcher{db: db, hub: hub, log: l}
}

// Watch 阻塞消费指定集合的变更流，直到 ctx 取消。调用方自行放进 goroutine。
func (w *Watcher) Watch(ctx context.Context, collection string) error {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := w.db.Collection(collection).Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var ev struct {
			DocumentKey struct {
				ID any `bson:"_id"`
			} `bson:"documentKey"`
			FullDocument bson.M `bson:"fullDocument"`
		}
		if err := stream.Decode(&ev); err != nil {
			w.log.Warn("decode change stream event failed",
				zap.String("collection", collection), zap.Error(err))
			continue
		}
		w.hub.Publish(observer.Event{
			Collection: collection,
			DocID:      stringifyID(ev.DocumentKey.ID),
			Data:       map[string]any(ev.FullDocument),
		})
	}
	return stream.Err()
}

func stringifyID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case bson.ObjectID:
		return v.Hex()
	default:
		b, _ := bson.MarshalExtJSON(bson.M{"v": v}, false, false)
		return string(b)
	}
}
