package utils

import (
	"fmt"
	"sync"
	"time"
)

// 64 位实体 id 布局：1 位符号 | 41 位毫秒偏移 | 8 位服务器号 | 14 位序列。
// 毫秒偏移从 2025-01-01 起算，够用约 69 年；单毫秒可发 16384 个 id。
const (
	idEpochMilli int64 = 1735689600000 // 2025-01-01 00:00:00 UTC

	serverIDBits = 8
	sequenceBits = 14

	maxServerID = 1<<serverIDBits - 1
	sequenceMax = 1<<sequenceBits - 1
)

// IDGen 生成全服唯一、进程内单调递增的实体 id。
// 城市、行军、交易挂单等落库实体都用它做主键，服务器号取自配置。
type IDGen struct {
	mu       sync.Mutex
	serverID int64
	lastMs   int64
	sequence int64
	nowMs    func() int64
}

func NewIDGen(serverID int64) (*IDGen, error) {
	if serverID < 0 || serverID > maxServerID {
		return nil, fmt.Errorf("server id %d 超出 [0,%d]", serverID, maxServerID)
	}
	return &IDGen{
		serverID: serverID,
		nowMs:    func() int64 { return time.Now().UnixMilli() },
	}, nil
}

func (g *IDGen) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.nowMs()
	// 时钟回拨时沿用上次时间戳，靠序列号顶住，保证不重复不回退。
	if ms < g.lastMs {
		ms = g.lastMs
	}
	if ms == g.lastMs {
		g.sequence = (g.sequence + 1) & sequenceMax
		if g.sequence == 0 {
			// 序列号用尽，自旋等下一毫秒。
			for ms <= g.lastMs {
				ms = g.nowMs()
			}
		}
	} else {
		g.sequence = 0
	}
	g.lastMs = ms

	return (ms-idEpochMilli)<<(serverIDBits+sequenceBits) |
		g.serverID<<sequenceBits |
		g.sequence
}
