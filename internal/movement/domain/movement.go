package domain

import (
	"time"

	"IslandKingdoms/internal/economy"
)

// Type 是行军的目的类别。村庄/遗迹/神城攻击与普通攻击分开建账，
// 解算器按类型选择结算规则。
type Type string

const (
	TypeAttack        Type = "attack"
	TypeAttackVillage Type = "attack_village"
	TypeAttackRuin    Type = "attack_ruin"
	TypeAttackGodTown Type = "attack_god_town"
	TypeReinforce     Type = "reinforce"
	TypeScout         Type = "scout"
	TypeTrade         Type = "trade"
	TypeFoundCity     Type = "found_city"
	TypeAssignHero    Type = "assign_hero"
	TypeReturn        Type = "return"
)

type Status string

const (
	StatusMoving    Status = "moving"
	StatusReturning Status = "returning"
)

// TargetKind 决定岛屿邻接规则：村庄必须同岛，遗迹/神城一律按跨岛处理。
type TargetKind string

const (
	TargetCity    TargetKind = "city"
	TargetVillage TargetKind = "village"
	TargetRuin    TargetKind = "ruin"
	TargetGodTown TargetKind = "god_town"
	TargetSlot    TargetKind = "slot"
)

// Point 是地图上的一个落点及其归属岛。
type Point struct {
	IslandID int64 `bson:"island_id"`
	X        int   `bson:"x"`
	Y        int   `bson:"y"`
}

// Formation 是攻击行军的阵型指定：每条线至多引用一个兵种 id，
// 被引用的兵种必须是出征名单里数量非零的陆军。
type Formation struct {
	Front string `bson:"front,omitempty"`
	Mid   string `bson:"mid,omitempty"`
	Back  string `bson:"back,omitempty"`
}

func (f *Formation) Lines() []string {
	if f == nil {
		return nil
	}
	var lines []string
	for _, id := range []string{f.Front, f.Mid, f.Back} {
		if id != "" {
			lines = append(lines, id)
		}
	}
	return lines
}

// Movement 是两点之间一次单向的、有时限的转移。
// 派遣时即从起点城扣走单位/资源；到达结算由外部解算器完成。
type Movement struct {
	ID       int64 `bson:"_id"`
	PlayerID int64 `bson:"player_id"`

	Type   Type   `bson:"type"`
	Status Status `bson:"status"`

	OriginCityID int64 `bson:"origin_city_id"`
	Origin       Point `bson:"origin"`

	TargetKind   TargetKind `bson:"target_kind"`
	TargetCityID int64      `bson:"target_city_id,omitempty"`
	Target       Point      `bson:"target"`

	Units     map[string]int64  `bson:"units,omitempty"`
	Resources economy.Resources `bson:"resources,omitempty"`
	// 侦察携带的洞穴白银，与 Resources.Silver 互不相通。
	CaveSilver int64      `bson:"cave_silver,omitempty"`
	HeroID     string     `bson:"hero_id,omitempty"`
	Formation  *Formation `bson:"formation,omitempty"`

	DepartureTime    time.Time `bson:"departure_time"`
	ArrivalTime      time.Time `bson:"arrival_time"`
	CancellableUntil time.Time `bson:"cancellable_until"`

	// 殖民船到达后的建城耗时（仅 found_city）。
	FoundingDuration time.Duration `bson:"founding_duration,omitempty"`
}

// Recallable 判断此刻是否仍在宽限窗口内（可以直接撤销派遣）。
func (m *Movement) Recallable(now time.Time) bool {
	return m.Status == StatusMoving && now.Before(m.CancellableUntil)
}

// TurnAround 把行军原路折返：回程耗时等于已走过的时间，
// 而不是重新按距离计算。到达后的行军不可折返。
func (m *Movement) TurnAround(now time.Time) bool {
	if m.Status != StatusMoving || !now.Before(m.ArrivalTime) {
		return false
	}
	elapsed := now.Sub(m.DepartureTime)
	if elapsed < 0 {
		elapsed = 0
	}
	m.ArrivalTime = now.Add(elapsed)
	m.Status = StatusReturning
	return true
}

// ReinforcementEntry 是驻防台账里一个来源城的贡献。
type ReinforcementEntry struct {
	OwnerID        int64            `bson:"owner_id"`
	OriginCityName string           `bson:"origin_city_name"`
	Units          map[string]int64 `bson:"units"`
}

// ReinforcementLedger 是目标城的驻防台账：来源城 id → 贡献条目。
// 撤回只允许动请求方自己名下的条目。
type ReinforcementLedger struct {
	TargetCityID int64                        `bson:"_id"`
	Entries      map[int64]ReinforcementEntry `bson:"entries"`
}

// WithdrawOwn 摘下 ownerID 在 originCityID 名下的条目。
// 条目不存在或归属不符时返回 false，台账不变。
func (l *ReinforcementLedger) WithdrawOwn(ownerID, originCityID int64) (ReinforcementEntry, bool) {
	e, ok := l.Entries[originCityID]
	if !ok || e.OwnerID != ownerID {
		return ReinforcementEntry{}, false
	}
	delete(l.Entries, originCityID)
	return e, true
}
