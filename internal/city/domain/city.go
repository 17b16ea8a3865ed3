package domain

import (
	"sort"
	"time"

	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
	"IslandKingdoms/internal/shared/gameconfig/unit"
)

type CityID int64

type PlayerID int64

// BuildingState 是城内一座建筑的权威状态。
// Workers 只对生产类建筑有意义。
type BuildingState struct {
	Level   int `bson:"level"`
	Workers int `bson:"workers,omitempty"`
}

// City 是玩家的基本经济单元。
//
// Resources/Favor 带 LastUpdated 水位线：产量不落库，读取时按
// 流逝时间补算（见 Accrue），上限仓库容量。人口/幸福度/产率
// 永远由建筑状态推导，不作为权威状态存储。
type City struct {
	ID       CityID   `bson:"_id"`
	PlayerID PlayerID `bson:"player_id"`
	SlotID   int64    `bson:"slot_id"`
	IslandID int64    `bson:"island_id"`
	X        int      `bson:"x"`
	Y        int      `bson:"y"`
	Name     string   `bson:"name"`

	Resources   economy.Resources `bson:"resources"`
	LastUpdated time.Time         `bson:"last_updated"`

	// 不足一个整单位的产出余量，跨次补算累积。没有它，高频补算
	// 每次都把小数部分取整丢掉，活跃玩家反而零产出。
	ResourceCarry map[string]float64 `bson:"resource_carry,omitempty"`
	FavorCarry    map[string]float64 `bson:"favor_carry,omitempty"`

	// 洞穴白银：侦察任务的专用资金池，与城市白银严格分离。
	CaveSilver int64 `bson:"cave_silver"`

	// 驻城英雄。派遣在途时 HeroAway 为真，期间不能再次派出。
	HeroID   string `bson:"hero_id,omitempty"`
	HeroAway bool   `bson:"hero_away,omitempty"`

	Buildings map[string]*BuildingState `bson:"buildings"`
	Units     map[string]int64          `bson:"units"`
	Wounded   map[string]int64          `bson:"wounded"`

	Research            map[string]bool `bson:"research"`
	ResearchPointsSpent int             `bson:"research_points_spent"`

	// 信仰按神分账，切换信奉不清空其他神的累积。
	WorshippedGod string           `bson:"worshipped_god,omitempty"`
	Favor         map[string]int64 `bson:"favor"`

	// 生产加成法术的有效窗口（百分比 + 截止时刻）。
	BoostPercent int       `bson:"boost_percent,omitempty"`
	BoostUntil   time.Time `bson:"boost_until,omitempty"`

	Queues map[QueueKind]*TaskQueue `bson:"-"`

	// 工人预设，每个玩家每城最多 3 套。
	WorkerPresets map[string]map[string]int `bson:"worker_presets,omitempty"`
}

func NewCity(id CityID, playerID PlayerID, slotID, islandID int64, x, y int, name string, now time.Time) *City {
	c := &City{
		ID:          id,
		PlayerID:    playerID,
		SlotID:      slotID,
		IslandID:    islandID,
		X:           x,
		Y:           y,
		Name:        name,
		Resources:   economy.Resources{Wood: 750, Stone: 750, Silver: 750},
		LastUpdated: now,
		Buildings: map[string]*BuildingState{
			building.Senate:    {Level: 1},
			building.Warehouse: {Level: 1},
			building.Farm:      {Level: 1},
		},
		Units:         make(map[string]int64),
		Wounded:       make(map[string]int64),
		Research:      make(map[string]bool),
		Favor:         make(map[string]int64),
		Queues:        make(map[QueueKind]*TaskQueue),
		WorkerPresets: make(map[string]map[string]int),
	}
	for _, k := range AllQueueKinds() {
		c.Queues[k] = NewTaskQueue()
	}
	return c
}

func (c *City) Queue(kind QueueKind) *TaskQueue {
	if c.Queues == nil {
		c.Queues = make(map[QueueKind]*TaskQueue)
	}
	q, ok := c.Queues[kind]
	if !ok {
		q = NewTaskQueue()
		c.Queues[kind] = q
	}
	return q
}

func (c *City) Level(buildingID string) int {
	b, ok := c.Buildings[buildingID]
	if !ok {
		return 0
	}
	return b.Level
}

// EffectiveLevel 是"有效队列等级"：当前等级加上建造队列里的净级差。
// 升级的前置条件按它判断，排队中的前置也算满足。
func (c *City) EffectiveLevel(buildingID string) int {
	return c.Level(buildingID) + c.Queue(QueueBuild).EffectiveLevelDelta(buildingID)
}

func (c *City) WarehouseCap(bt *building.Table) int64 {
	return economy.WarehouseCapacity(bt, c.Level(building.Warehouse))
}

// AvailablePopulation = 农场容量 − 在籍人口（军队+工人+排队训练占用）。
func (c *City) AvailablePopulation(bt *building.Table, ut *unit.Table) int64 {
	capacity := economy.FarmCapacity(bt, c.Level(building.Farm))
	workers := make(map[string]int, len(c.Buildings))
	for id, b := range c.Buildings {
		if b.Workers > 0 {
			workers[id] = b.Workers
		}
	}
	used := economy.UsedPopulation(ut, c.Units, workers, 0)
	used += c.queuedPopulation(ut)
	return capacity - used
}

// 排队中的训练/治疗占用的人口也要立刻计入，否则可以超编排队。
func (c *City) queuedPopulation(ut *unit.Table) int64 {
	var total int64
	for _, kind := range []QueueKind{QueueBarracks, QueueShipyard, QueueTemple, QueueHeal} {
		for _, t := range c.Queue(kind).Tasks() {
			u, ok := ut.Get(t.TargetID)
			if !ok {
				continue
			}
			total += u.Population * t.Amount
		}
	}
	return total
}

func (c *City) Happiness() int {
	workers := make(map[string]int, len(c.Buildings))
	for id, b := range c.Buildings {
		if b.Workers > 0 {
			workers[id] = b.Workers
		}
	}
	return economy.Happiness(workers)
}

// Accrue 把从水位线到 now 的资源产出与信仰累积补算进状态。
// 上限仓库容量；时间倒流（快照乱序）时只推水位线不产出。
// 不足整单位的部分存进余量，补算频率不影响长期总产出。
func (c *City) Accrue(bt *building.Table, gt *god.Table, now time.Time) {
	elapsed := now.Sub(c.LastUpdated)
	if elapsed <= 0 {
		c.LastUpdated = now
		return
	}
	hours := elapsed.Hours()

	// 生产加成只对 [水位线, BoostUntil] 的重叠区间生效。
	effectiveHours := hours
	if c.BoostPercent > 0 && c.BoostUntil.After(c.LastUpdated) {
		boostEnd := c.BoostUntil
		if boostEnd.After(now) {
			boostEnd = now
		}
		overlap := boostEnd.Sub(c.LastUpdated).Hours()
		effectiveHours += float64(c.BoostPercent) / 100 * overlap
	}

	produced := make(map[string]float64, 3)
	for id, st := range c.Buildings {
		b, ok := bt.Get(id)
		if !ok || b.Produces == "" {
			continue
		}
		produced[b.Produces] += economy.ProductionRate(b, st.Level, st.Workers) * effectiveHours
	}

	// 只入账整单位，小数余量留到下次补算。余量永远小于 1。
	gain := economy.Resources{}
	for res, amount := range produced {
		if c.ResourceCarry == nil {
			c.ResourceCarry = make(map[string]float64, 3)
		}
		raw := amount + c.ResourceCarry[res]
		whole := int64(raw)
		c.ResourceCarry[res] = raw - float64(whole)
		switch res {
		case "wood":
			gain.Wood += whole
		case "stone":
			gain.Stone += whole
		case "silver":
			gain.Silver += whole
		}
	}
	c.Resources = c.Resources.Add(gain).CapAt(c.WarehouseCap(bt))

	if c.WorshippedGod != "" && gt != nil {
		if g, ok := gt.God(c.WorshippedGod); ok {
			templeLevel := c.Level(building.Temple)
			if templeLevel > 0 {
				if c.FavorCarry == nil {
					c.FavorCarry = make(map[string]float64, 1)
				}
				raw := g.FavorPerHour*float64(templeLevel)*hours + c.FavorCarry[c.WorshippedGod]
				whole := int64(raw)
				c.FavorCarry[c.WorshippedGod] = raw - float64(whole)
				c.Favor[c.WorshippedGod] += whole
			}
		}
	}
	c.LastUpdated = now
}

// CompletedTask 是补算流程弹出的一个已完成任务及其所属队列。
type CompletedTask struct {
	Queue QueueKind
	Task  Task
}

// PopCompleted 按全局完成时刻顺序弹出所有已到期任务。
// 跨队列排序保证"先完成的建筑等级先生效"这类依赖关系正确。
func (c *City) PopCompleted(now time.Time) []CompletedTask {
	var done []CompletedTask
	for _, kind := range AllQueueKinds() {
		for _, t := range c.Queue(kind).PopCompleted(now) {
			done = append(done, CompletedTask{Queue: kind, Task: t})
		}
	}
	sort.Slice(done, func(i, j int) bool {
		return done[i].Task.EndTime.Before(done[j].Task.EndTime)
	})
	return done
}

// ApplyCompleted 把一个已完成任务的效果落到城市状态上。
func (c *City) ApplyCompleted(ct CompletedTask) {
	t := ct.Task
	switch t.Kind {
	case TaskUpgrade:
		st, ok := c.Buildings[t.TargetID]
		if !ok {
			st = &BuildingState{}
			c.Buildings[t.TargetID] = st
		}
		st.Level++
	case TaskDemolish:
		if st, ok := c.Buildings[t.TargetID]; ok && st.Level > 0 {
			st.Level--
		}
	case TaskResearch:
		c.Research[t.TargetID] = true
	case TaskTrain:
		c.Units[t.TargetID] += t.Amount
	case TaskHeal:
		c.Units[t.TargetID] += t.Amount
	}
}

// Reconcile 是城市加载时的补算入口：先结算资源/信仰，再应用到期任务。
// 任务完成会改变建筑等级（影响产率），严格做法是按时间分段结算；
// 这里沿用"先按旧状态补产出，再应用任务"的近似，误差只在加载间隔内。
func (c *City) Reconcile(bt *building.Table, gt *god.Table, now time.Time) []CompletedTask {
	c.Accrue(bt, gt, now)
	done := c.PopCompleted(now)
	for _, ct := range done {
		c.ApplyCompleted(ct)
	}
	return done
}
