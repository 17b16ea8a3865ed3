package domain

import (
	"testing"
	"time"

	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
	"IslandKingdoms/internal/shared/gameconfig/unit"
)

func testTables() (*building.Table, *unit.Table, *god.Table) {
	bt := building.NewTable([]building.Building{
		{ID: building.Senate, Kind: building.KindSpecial, MaxLevel: 25,
			BaseCost: building.Cost{Wood: 200, Stone: 150}, CostGrowth: 1.3, BaseTimeS: 60},
		{ID: building.TimberCamp, Kind: building.KindProduction, MaxLevel: 30,
			BaseCost: building.Cost{Wood: 60, Stone: 80}, CostGrowth: 1.3, BaseTimeS: 120,
			Produces: "wood", BaseRate: 120, RateGrowth: 1.15, WorkerSlotsPerLevel: 1},
		{ID: building.Warehouse, Kind: building.KindStorage, MaxLevel: 25,
			BaseCost: building.Cost{Wood: 100, Stone: 120}, CostGrowth: 1.35, BaseTimeS: 180,
			BaseCapacity: 1500, CapacityGrowth: 1.4},
		{ID: building.Farm, Kind: building.KindStorage, MaxLevel: 25,
			BaseCost: building.Cost{Wood: 80, Stone: 60}, CostGrowth: 1.3, BaseTimeS: 150,
			BaseCapacity: 300, CapacityGrowth: 1.3},
		{ID: building.Temple, Kind: building.KindSpecial, MaxLevel: 20,
			BaseCost: building.Cost{Wood: 150, Stone: 150}, CostGrowth: 1.3, BaseTimeS: 200},
	})
	ut := unit.NewTable([]unit.Unit{
		{ID: "swordsman", Kind: unit.KindLand, Speed: 8, Population: 1,
			Cost: unit.Cost{Wood: 95, Silver: 85}, TrainTimeS: 600},
	})
	gt := god.NewTable([]god.God{{ID: "poseidon", Name: "Poseidon", FavorPerHour: 10}}, nil)
	return bt, ut, gt
}

func TestAccrue_产出受仓库容量封顶(t *testing.T) {
	bt, _, gt := testTables()
	c := NewCity(1, 100, 1, 1, 3, 4, "Alexandria", t0)
	c.Buildings[building.TimberCamp] = &BuildingState{Level: 1}
	c.Resources.Wood = 1400

	c.Accrue(bt, gt, t0.Add(10*time.Hour))
	// 1 级仓库容量 1500：10 小时 ×120/h 的产出被截断
	if c.Resources.Wood != 1500 {
		t.Fatalf("期望封顶 1500，got=%d", c.Resources.Wood)
	}
	if !c.LastUpdated.Equal(t0.Add(10 * time.Hour)) {
		t.Fatalf("水位线应推进")
	}
}

func TestAccrue_工人加成计入产出(t *testing.T) {
	bt, _, gt := testTables()
	c := NewCity(1, 100, 1, 1, 3, 4, "Alexandria", t0)
	c.Buildings[building.TimberCamp] = &BuildingState{Level: 1, Workers: 2}
	c.Resources.Wood = 0

	c.Accrue(bt, gt, t0.Add(time.Hour))
	// 120 × (1 + 0.2) = 144
	if c.Resources.Wood != 144 {
		t.Fatalf("期望 144，got=%d", c.Resources.Wood)
	}
}

func TestAccrue_时间倒流只推水位线(t *testing.T) {
	bt, _, gt := testTables()
	c := NewCity(1, 100, 1, 1, 3, 4, "Alexandria", t0)
	c.Buildings[building.TimberCamp] = &BuildingState{Level: 5}
	before := c.Resources

	c.Accrue(bt, gt, t0.Add(-time.Hour))
	if c.Resources != before {
		t.Fatalf("时间倒流不应产出，got=%+v", c.Resources)
	}
}

func TestAccrue_信仰按神殿等级与时长累积(t *testing.T) {
	bt, _, gt := testTables()
	c := NewCity(1, 100, 1, 1, 3, 4, "Alexandria", t0)
	c.WorshippedGod = "poseidon"
	c.Buildings[building.Temple] = &BuildingState{Level: 2}

	c.Accrue(bt, gt, t0.Add(3*time.Hour))
	// 10 × 2 级 × 3h = 60
	if c.Favor["poseidon"] != 60 {
		t.Fatalf("期望 60 信仰，got=%d", c.Favor["poseidon"])
	}
}

func TestAccrue_高频补算不吞小数产出(t *testing.T) {
	bt, _, gt := testTables()
	once := NewCity(1, 100, 1, 1, 3, 4, "Alexandria", t0)
	often := NewCity(2, 100, 2, 1, 5, 6, "Sparta", t0)
	for _, c := range []*City{once, often} {
		c.Buildings[building.TimberCamp] = &BuildingState{Level: 1}
		c.Buildings[building.Temple] = &BuildingState{Level: 1}
		c.WorshippedGod = "poseidon"
		c.Resources.Wood = 0
	}

	once.Accrue(bt, gt, t0.Add(time.Hour))
	// 每 10 秒补算一次：1 级伐木场单次只产 1/3 木、信仰单次 1/36，
	// 全靠余量跨次留存，否则一小时颗粒无收。
	for i := 1; i <= 360; i++ {
		often.Accrue(bt, gt, t0.Add(time.Duration(i)*10*time.Second))
	}

	if once.Resources.Wood != 120 {
		t.Fatalf("单次补算期望 120 木，got=%d", once.Resources.Wood)
	}
	if diff := once.Resources.Wood - often.Resources.Wood; diff < 0 || diff > 1 {
		t.Fatalf("高频补算木产出应与单次一致，once=%d often=%d", once.Resources.Wood, often.Resources.Wood)
	}
	if diff := once.Favor["poseidon"] - often.Favor["poseidon"]; diff < 0 || diff > 1 {
		t.Fatalf("高频补算信仰应与单次一致，once=%d often=%d", once.Favor["poseidon"], often.Favor["poseidon"])
	}
}

func TestEffectiveLevel_计入队列净差(t *testing.T) {
	c := NewCity(1, 100, 1, 1, 3, 4, "Alexandria", t0)
	c.Buildings[building.TimberCamp] = &BuildingState{Level: 3}
	_ = c.Queue(QueueBuild).Enqueue(Task{ID: 1, Kind: TaskUpgrade, TargetID: building.TimberCamp, Duration: time.Minute}, t0)
	_ = c.Queue(QueueBuild).Enqueue(Task{ID: 2, Kind: TaskUpgrade, TargetID: building.TimberCamp, Duration: time.Minute}, t0)

	if got := c.EffectiveLevel(building.TimberCamp); got != 5 {
		t.Fatalf("期望有效等级 5，got=%d", got)
	}
	if got := c.Level(building.TimberCamp); got != 3 {
		t.Fatalf("当前等级仍是 3，got=%d", got)
	}
}

func TestReconcile_到期任务跨队列按时间序生效(t *testing.T) {
	bt, _, gt := testTables()
	c := NewCity(1, 100, 1, 1, 3, 4, "Alexandria", t0)
	_ = c.Queue(QueueBuild).Enqueue(Task{ID: 1, Kind: TaskUpgrade, TargetID: building.Senate, Duration: time.Minute}, t0)
	_ = c.Queue(QueueBarracks).Enqueue(Task{ID: 2, Kind: TaskTrain, TargetID: "swordsman", Amount: 5, Duration: 30 * time.Second}, t0)
	_ = c.Queue(QueueBuild).Enqueue(Task{ID: 3, Kind: TaskUpgrade, TargetID: building.Senate, Duration: time.Hour}, t0)

	done := c.Reconcile(bt, gt, t0.Add(2*time.Minute))
	if len(done) != 2 {
		t.Fatalf("期望 2 条任务到期，got=%d", len(done))
	}
	if done[0].Task.ID != 2 || done[1].Task.ID != 1 {
		t.Fatalf("应按完成时刻排序，got=%+v", done)
	}
	if c.Level(building.Senate) != 2 {
		t.Fatalf("议会应升到 2 级，got=%d", c.Level(building.Senate))
	}
	if c.Units["swordsman"] != 5 {
		t.Fatalf("新兵应入营，got=%d", c.Units["swordsman"])
	}
	if c.Queue(QueueBuild).Len() != 1 {
		t.Fatalf("未到期任务应保留，len=%d", c.Queue(QueueBuild).Len())
	}
}

func TestAvailablePopulation_计入排队训练占用(t *testing.T) {
	bt, ut, _ := testTables()
	c := NewCity(1, 100, 1, 1, 3, 4, "Alexandria", t0)
	c.Units["swordsman"] = 50
	base := c.AvailablePopulation(bt, ut)

	_ = c.Queue(QueueBarracks).Enqueue(Task{ID: 1, Kind: TaskTrain, TargetID: "swordsman", Amount: 20, Duration: time.Minute}, t0)
	queued := c.AvailablePopulation(bt, ut)
	if queued != base-20 {
		t.Fatalf("排队训练应立刻占用人口：base=%d queued=%d", base, queued)
	}
}
