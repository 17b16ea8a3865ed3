package model

import (
	"IslandKingdoms/internal/city/domain"
)

// CityDoc 是城市的落库形态。
// 领域对象里的队列是带行为的 TaskQueue，落库时摊平成任务数组。
type CityDoc struct {
	City   domain.City                        `bson:",inline"`
	Queues map[domain.QueueKind][]domain.Task `bson:"queues,omitempty"`
}

func CityToDoc(c *domain.City) CityDoc {
	doc := CityDoc{City: *c}
	for kind, q := range c.Queues {
		tasks := q.Tasks()
		if len(tasks) == 0 {
			continue
		}
		if doc.Queues == nil {
			doc.Queues = make(map[domain.QueueKind][]domain.Task)
		}
		doc.Queues[kind] = tasks
	}
	return doc
}

func DocToCity(doc CityDoc) *domain.City {
	c := doc.City
	c.Queues = make(map[domain.QueueKind]*domain.TaskQueue, len(doc.Queues))
	for kind, tasks := range doc.Queues {
		c.Queues[kind] = domain.NewTaskQueue(tasks...)
	}
	return &c
}
