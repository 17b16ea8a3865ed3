package observer

import "sync"

// Event 是一次文档快照推送：某集合里某文档的最新权威状态。
//
// 客户端本地的乐观状态只作为即时反馈，下一次快照推送以这里的数据为准。
type Event struct {
	Collection string
	DocID      string
	Data       map[string]any
}

// Subscriber 接收快照推送。实现方不得阻塞 OnSnapshot。
type Subscriber interface {
	OnSnapshot(ev Event)
}

// Hub 是核心与展示层之间的显式订阅点。
// 核心不感知订阅者是否存在，零订阅者时所有动作照常工作（headless）。
type Hub struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]Subscriber // collection -> id -> subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]Subscriber)}
}

// Subscribe 订阅一个集合的快照流，返回取消函数。
func (h *Hub) Subscribe(collection string, s Subscriber) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]Subscriber)
	}
	id := h.next
	h.next++
	h.subs[collection][id] = s
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[collection], id)
	}
}

// Publish 把快照推给该集合的所有订阅者。
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.subs[ev.Collection]))
	for _, s := range h.subs[ev.Collection] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()
	for _, s := range targets {
		s.OnSnapshot(ev)
	}
}
