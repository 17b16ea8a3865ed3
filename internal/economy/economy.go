package economy

import (
	"math"

	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/unit"
)

// 经济常数。数值表之外唯一的硬编码平衡参数：它们是机制的一部分，
// 不随服数值调整。
const (
	// 每个工人占用的人口。
	WorkerPopulation int64 = 20
	// 每个工人给所在建筑的产量加成。
	WorkerProductionBonus = 0.10
	// 每个工人的幸福度惩罚。
	WorkerHappinessPenalty = 5
	// 基础幸福度。
	BaseHappiness = 100
	// 取消队列尾任务时返还的资源比例（向下取整）。
	CancelRefundRate = 0.5
	// 学院每级提供的研究点。
	ResearchPointsPerLevel = 4
)

// Resources 是三种基础资源的数量。所有字段非负，上限是仓库容量。
type Resources struct {
	Wood   int64 `json:"wood" bson:"wood"`
	Stone  int64 `json:"stone" bson:"stone"`
	Silver int64 `json:"silver" bson:"silver"`
}

func (r Resources) Add(o Resources) Resources {
	return Resources{Wood: r.Wood + o.Wood, Stone: r.Stone + o.Stone, Silver: r.Silver + o.Silver}
}

func (r Resources) Sub(o Resources) Resources {
	return Resources{Wood: r.Wood - o.Wood, Stone: r.Stone - o.Stone, Silver: r.Silver - o.Silver}
}

// CoversAll 判断 r 在三种资源上同时不少于 o。
func (r Resources) CoversAll(o Resources) bool {
	return r.Wood >= o.Wood && r.Stone >= o.Stone && r.Silver >= o.Silver
}

// Scale 按比例缩放（向下取整），用于 50% 退款和拆除半价。
func (r Resources) Scale(f float64) Resources {
	return Resources{
		Wood:   int64(math.Floor(float64(r.Wood) * f)),
		Stone:  int64(math.Floor(float64(r.Stone) * f)),
		Silver: int64(math.Floor(float64(r.Silver) * f)),
	}
}

// CapAt 把每种资源夹到 [0, capacity]。
func (r Resources) CapAt(capacity int64) Resources {
	clamp := func(v int64) int64 {
		if v < 0 {
			return 0
		}
		if v > capacity {
			return capacity
		}
		return v
	}
	return Resources{Wood: clamp(r.Wood), Stone: clamp(r.Stone), Silver: clamp(r.Silver)}
}

// Cost 是一次升级/研究/训练的完整开销。
type Cost struct {
	Resources  Resources
	Population int64
	// 任务时长，秒。
	TimeS int64
	// mythic 兵种消耗的信仰值。
	Favor int64
}

// UpgradeCost 计算把建筑升到 targetLevel 的成本：base × growth^(L-1)，向下取整。
func UpgradeCost(b *building.Building, targetLevel int) Cost {
	if b == nil || targetLevel < 1 {
		return Cost{}
	}
	factor := math.Pow(b.CostGrowth, float64(targetLevel-1))
	timeFactor := factor
	if b.TimeGrowth > 0 {
		timeFactor = math.Pow(b.TimeGrowth, float64(targetLevel-1))
	}
	return Cost{
		Resources: Resources{
			Wood:   int64(math.Floor(float64(b.BaseCost.Wood) * factor)),
			Stone:  int64(math.Floor(float64(b.BaseCost.Stone) * factor)),
			Silver: int64(math.Floor(float64(b.BaseCost.Silver) * factor)),
		},
		Population: b.BaseCost.Population,
		TimeS:      int64(math.Floor(float64(b.BaseTimeS) * timeFactor)),
	}
}

// DemolishCost 是被拆等级正向升级成本的一半（资源与时间都减半）。
func DemolishCost(b *building.Building, vacatedLevel int) Cost {
	up := UpgradeCost(b, vacatedLevel)
	return Cost{
		Resources: up.Resources.Scale(0.5),
		TimeS:     up.TimeS / 2,
	}
}

// ProductionRate 返回生产建筑的小时产量。
// 每个工人提供 10% 固定加成：rate = base(level) × (1 + 0.10 × workers)。
func ProductionRate(b *building.Building, level, workers int) float64 {
	if b == nil || b.Produces == "" || level < 1 {
		return 0
	}
	growth := b.RateGrowth
	if growth <= 0 {
		growth = 1
	}
	base := b.BaseRate * math.Pow(growth, float64(level-1))
	return base * (1 + WorkerProductionBonus*float64(workers))
}

// WorkerSlotCap 返回该建筑当前等级开放的工人位。
func WorkerSlotCap(b *building.Building, level int) int {
	if b == nil || level < 1 {
		return 0
	}
	return b.WorkerSlotsPerLevel * level
}

// capacity = base × growth^(level-1)，等级 0 没有容量。
func capacityAt(b *building.Building, level int) int64 {
	if b == nil || level < 1 || b.BaseCapacity <= 0 {
		return 0
	}
	growth := b.CapacityGrowth
	if growth <= 0 {
		growth = 1
	}
	return int64(math.Floor(float64(b.BaseCapacity) * math.Pow(growth, float64(level-1))))
}

func WarehouseCapacity(t *building.Table, level int) int64 {
	b, _ := t.Get(building.Warehouse)
	return capacityAt(b, level)
}

func FarmCapacity(t *building.Table, level int) int64 {
	b, _ := t.Get(building.Farm)
	return capacityAt(b, level)
}

func MarketCapacity(t *building.Table, level int) int64 {
	b, _ := t.Get(building.Market)
	return capacityAt(b, level)
}

func HospitalCapacity(t *building.Table, level int) int64 {
	b, _ := t.Get(building.Hospital)
	return capacityAt(b, level)
}

// UsedPopulation 汇总在籍人口：全部常备军 + 全部已分配工人 + 特殊建筑占用。
func UsedPopulation(ut *unit.Table, units map[string]int64, workers map[string]int, specialPop int64) int64 {
	total := specialPop
	for id, count := range units {
		u, ok := ut.Get(id)
		if !ok {
			continue
		}
		total += u.Population * count
	}
	for _, w := range workers {
		total += WorkerPopulation * int64(w)
	}
	return total
}

// Happiness 为基础值减去每个工人的惩罚，供上层 UI 与机制消费。
func Happiness(workers map[string]int) int {
	total := 0
	for _, w := range workers {
		total += w
	}
	return BaseHappiness - WorkerHappinessPenalty*total
}

// TrainCost 是批量训练的成本，数量线性放大（时间也是）。
func TrainCost(u *unit.Unit, amount int64) Cost {
	if u == nil || amount < 1 {
		return Cost{}
	}
	return Cost{
		Resources: Resources{
			Wood:   u.Cost.Wood * amount,
			Stone:  u.Cost.Stone * amount,
			Silver: u.Cost.Silver * amount,
		},
		Population: u.Population * amount,
		TimeS:      u.TrainTimeS * amount,
		Favor:      u.Cost.Favor * amount,
	}
}

// HealCost 是治疗伤兵的成本：资源减半、无信仰消耗、人口按全额计。
func HealCost(u *unit.Unit, amount int64) Cost {
	if u == nil || amount < 1 {
		return Cost{}
	}
	full := TrainCost(u, amount)
	return Cost{
		Resources:  full.Resources.Scale(0.5),
		Population: full.Population,
		TimeS:      full.TimeS / 2,
	}
}

// ResearchPoints 返回学院等级提供的研究点总量。
func ResearchPoints(academyLevel int) int {
	if academyLevel < 1 {
		return 0
	}
	return ResearchPointsPerLevel * academyLevel
}
