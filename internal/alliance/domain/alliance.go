package domain

import "time"

type AllianceID int64

// 进度累加器使用的资源键，与交易所的资源名一致。
const (
	ResourceWood   = "wood"
	ResourceStone  = "stone"
	ResourceSilver = "silver"
)

// Wonder 是联盟唯一的奇观：位置、等级、以及尚未结算的捐献进度。
type Wonder struct {
	IslandID int64            `bson:"island_id"`
	X        int              `bson:"x"`
	Y        int              `bson:"y"`
	Level    int              `bson:"level"`
	Progress map[string]int64 `bson:"progress"`
}

type Alliance struct {
	ID       AllianceID `bson:"_id"`
	Name     string     `bson:"name"`
	LeaderID int64      `bson:"leader_id"`
	Members  []int64    `bson:"members"`

	// 没有奇观时为 nil。
	Wonder *Wonder `bson:"wonder,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
}

func (a *Alliance) IsLeader(playerID int64) bool {
	return a.LeaderID == playerID
}

func (a *Alliance) IsMember(playerID int64) bool {
	if a.LeaderID == playerID {
		return true
	}
	for _, m := range a.Members {
		if m == playerID {
			return true
		}
	}
	return false
}

// Donate 把一笔捐献记入进度累加器。奇观不存在时返回 false。
func (a *Alliance) Donate(resource string, amount int64) bool {
	if a.Wonder == nil {
		return false
	}
	if a.Wonder.Progress == nil {
		a.Wonder.Progress = make(map[string]int64)
	}
	a.Wonder.Progress[resource] += amount
	return true
}

// ClaimLevel 在三种资源的进度都达到 cost 时升一级，
// 并从进度中恰好扣掉消耗量：超出部分结转到下一级，不清零。
func (a *Alliance) ClaimLevel(cost map[string]int64) bool {
	w := a.Wonder
	if w == nil {
		return false
	}
	for res, need := range cost {
		if w.Progress[res] < need {
			return false
		}
	}
	for res, need := range cost {
		w.Progress[res] -= need
	}
	w.Level++
	return true
}
