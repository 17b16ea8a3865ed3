package domain

import (
	"time"

	"IslandKingdoms/internal/economy"
)

// QueueKind 标识城市的五条独立任务队列。
type QueueKind string

const (
	QueueBuild    QueueKind = "build"
	QueueResearch QueueKind = "research"
	QueueBarracks QueueKind = "barracks"
	QueueShipyard QueueKind = "shipyard"
	QueueTemple   QueueKind = "temple"
	QueueHeal     QueueKind = "heal"
)

func AllQueueKinds() []QueueKind {
	return []QueueKind{QueueBuild, QueueResearch, QueueBarracks, QueueShipyard, QueueTemple, QueueHeal}
}

type TaskKind string

const (
	TaskUpgrade  TaskKind = "upgrade"
	TaskDemolish TaskKind = "demolish"
	TaskResearch TaskKind = "research"
	TaskTrain    TaskKind = "train"
	TaskHeal     TaskKind = "heal"
)

// 每条队列最多 5 个条目。
const MaxQueueLength = 5

// Task 是一个入队的延时任务。EndTime 链在前一个条目的完成时刻上：
// 队列 FIFO 完成、LIFO 取消，所以除尾部外的 EndTime 永不改变。
type Task struct {
	ID       int64             `bson:"id"`
	Kind     TaskKind          `bson:"kind"`
	TargetID string            `bson:"target_id"`
	Amount   int64             `bson:"amount,omitempty"`
	Paid     economy.Resources `bson:"paid"`
	Duration time.Duration     `bson:"duration"`
	EndTime  time.Time         `bson:"end_time"`
}

// TaskQueue 是有界有序任务队列，五种队列共用同一套语义。
type TaskQueue struct {
	tasks []Task
}

func NewTaskQueue(tasks ...Task) *TaskQueue {
	q := &TaskQueue{}
	q.tasks = append(q.tasks, tasks...)
	return q
}

func (q *TaskQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.tasks)
}

// Tasks 返回条目快照，调用方改动不影响队列。
func (q *TaskQueue) Tasks() []Task {
	if q == nil || len(q.tasks) == 0 {
		return nil
	}
	out := make([]Task, len(q.tasks))
	copy(out, q.tasks)
	return out
}

func (q *TaskQueue) Head() (Task, bool) {
	if q.Len() == 0 {
		return Task{}, false
	}
	return q.tasks[0], true
}

func (q *TaskQueue) Tail() (Task, bool) {
	if q.Len() == 0 {
		return Task{}, false
	}
	return q.tasks[len(q.tasks)-1], true
}

// Remaining 是队首任务的剩余时间；完成时刻靠读取方观察，不靠轮询。
func (q *TaskQueue) Remaining(now time.Time) time.Duration {
	head, ok := q.Head()
	if !ok {
		return 0
	}
	d := head.EndTime.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Enqueue 追加任务：满 5 拒绝；EndTime 链在尾部完成时刻（空队列则链在 now）。
func (q *TaskQueue) Enqueue(task Task, now time.Time) error {
	if q.Len() >= MaxQueueLength {
		return ErrQueueFull
	}
	base := now
	if tail, ok := q.Tail(); ok {
		base = tail.EndTime
	}
	task.EndTime = base.Add(task.Duration)
	q.tasks = append(q.tasks, task)
	return nil
}

// CancelLast 取消指定任务，仅当它是队尾。返回被移除的任务供退款。
// 移除后对剩余条目自队首向后重算 EndTime 链——尾部移除本不需要，
// 但未来放开中间取消时这段是正确性防线。
func (q *TaskQueue) CancelLast(taskID int64) (Task, error) {
	if q.Len() == 0 {
		return Task{}, ErrQueueEmpty
	}
	tail := q.tasks[len(q.tasks)-1]
	if tail.ID != taskID {
		for _, t := range q.tasks {
			if t.ID == taskID {
				return Task{}, ErrNotTailTask
			}
		}
		return Task{}, ErrTaskNotFound
	}
	q.tasks = q.tasks[:len(q.tasks)-1]
	q.rechain()
	return tail, nil
}

func (q *TaskQueue) rechain() {
	prevEnd := time.Time{}
	for i := range q.tasks {
		if i == 0 {
			// 队首已经在跑，EndTime 不动。
			prevEnd = q.tasks[i].EndTime
			continue
		}
		q.tasks[i].EndTime = prevEnd.Add(q.tasks[i].Duration)
		prevEnd = q.tasks[i].EndTime
	}
}

// PopCompleted 弹出所有 EndTime ≤ now 的任务（按完成顺序）。
// 由城市加载时的补算流程消费。
func (q *TaskQueue) PopCompleted(now time.Time) []Task {
	var done []Task
	for len(q.tasks) > 0 && !q.tasks[0].EndTime.After(now) {
		done = append(done, q.tasks[0])
		q.tasks = q.tasks[1:]
	}
	return done
}

// EffectiveLevelDelta 统计队列里针对某建筑的未完成升级/拆除净级差。
// 前置条件检查用"有效队列等级"（当前等级+净级差），而不是当前等级。
func (q *TaskQueue) EffectiveLevelDelta(buildingID string) int {
	delta := 0
	for _, t := range q.tasks {
		if t.TargetID != buildingID {
			continue
		}
		switch t.Kind {
		case TaskUpgrade:
			delta++
		case TaskDemolish:
			delta--
		}
	}
	return delta
}

// QueuedAmount 汇总队列里某类任务占用的兵数，医馆容量按它对在治总量封顶。
func (q *TaskQueue) QueuedAmount(kind TaskKind) int64 {
	var total int64
	for _, t := range q.tasks {
		if t.Kind == kind {
			total += t.Amount
		}
	}
	return total
}
