package economy

import (
	"math"
	"testing"

	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/unit"
)

func testBuildings() *building.Table {
	return building.NewTable([]building.Building{
		{
			ID: building.TimberCamp, Kind: building.KindProduction, MaxLevel: 30,
			BaseCost:   building.Cost{Wood: 60, Stone: 80, Population: 2},
			CostGrowth: 1.3, BaseTimeS: 120, TimeGrowth: 1.25,
			Produces: "wood", BaseRate: 100, RateGrowth: 1.15, WorkerSlotsPerLevel: 1,
		},
		{
			ID: building.Warehouse, Kind: building.KindStorage, MaxLevel: 25,
			BaseCost:   building.Cost{Wood: 100, Stone: 120},
			CostGrowth: 1.35, BaseTimeS: 180,
			BaseCapacity: 1500, CapacityGrowth: 1.4,
		},
		{
			ID: building.Farm, Kind: building.KindStorage, MaxLevel: 25,
			BaseCost:   building.Cost{Wood: 80, Stone: 60},
			CostGrowth: 1.3, BaseTimeS: 150,
			BaseCapacity: 200, CapacityGrowth: 1.3,
		},
	})
}

func TestUpgradeCost_指数增长且向下取整(t *testing.T) {
	bt := testBuildings()
	b, _ := bt.Get(building.TimberCamp)

	lvl1 := UpgradeCost(b, 1)
	if lvl1.Resources.Wood != 60 || lvl1.Resources.Stone != 80 || lvl1.TimeS != 120 {
		t.Fatalf("1 级成本应等于基础成本，got=%+v", lvl1)
	}

	lvl3 := UpgradeCost(b, 3)
	wantWood := int64(math.Floor(60 * 1.3 * 1.3))
	if lvl3.Resources.Wood != wantWood {
		t.Fatalf("3 级 wood 成本期望 %d，got=%d", wantWood, lvl3.Resources.Wood)
	}

	// 更高等级成本单调不减
	prev := int64(0)
	for l := 1; l <= 10; l++ {
		c := UpgradeCost(b, l)
		if c.Resources.Wood < prev {
			t.Fatalf("成本应随等级单调不减，level=%d", l)
		}
		prev = c.Resources.Wood
	}
}

func TestDemolishCost_是正向成本的一半(t *testing.T) {
	bt := testBuildings()
	b, _ := bt.Get(building.TimberCamp)
	up := UpgradeCost(b, 5)
	down := DemolishCost(b, 5)
	if down.Resources.Wood != up.Resources.Scale(0.5).Wood {
		t.Fatalf("拆除成本应为升级成本一半，up=%+v down=%+v", up, down)
	}
	if down.TimeS != up.TimeS/2 {
		t.Fatalf("拆除时间应为升级时间一半，up=%d down=%d", up.TimeS, down.TimeS)
	}
}

func TestProductionRate_每个工人加一成(t *testing.T) {
	bt := testBuildings()
	b, _ := bt.Get(building.TimberCamp)

	for _, level := range []int{1, 5, 12} {
		base := ProductionRate(b, level, 0)
		for w := 1; w <= 6; w++ {
			got := ProductionRate(b, level, w)
			want := base * (1 + 0.10*float64(w))
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("level=%d workers=%d 期望 %f，got=%f", level, w, want, got)
			}
		}
	}
}

func TestWarehouseCapacity_按观测公式(t *testing.T) {
	bt := testBuildings()
	if got := WarehouseCapacity(bt, 1); got != 1500 {
		t.Fatalf("1 级仓库期望 1500，got=%d", got)
	}
	want := int64(math.Floor(1500 * 1.4 * 1.4))
	if got := WarehouseCapacity(bt, 3); got != want {
		t.Fatalf("3 级仓库期望 %d，got=%d", want, got)
	}
	if got := WarehouseCapacity(bt, 0); got != 0 {
		t.Fatalf("0 级仓库没有容量，got=%d", got)
	}
	// 单调递增
	prev := int64(0)
	for l := 1; l <= 20; l++ {
		c := WarehouseCapacity(bt, l)
		if c <= prev {
			t.Fatalf("容量应严格递增，level=%d", l)
		}
		prev = c
	}
}

func TestUsedPopulation_军队加工人加特殊建筑(t *testing.T) {
	ut := unit.NewTable([]unit.Unit{
		{ID: "swordsman", Kind: unit.KindLand, Population: 1},
		{ID: "trireme", Kind: unit.KindNaval, Population: 8},
	})
	used := UsedPopulation(ut,
		map[string]int64{"swordsman": 30, "trireme": 2},
		map[string]int{"timber_camp": 3},
		10,
	)
	// 30×1 + 2×8 + 3×20 + 10
	if used != 30+16+60+10 {
		t.Fatalf("期望 116，got=%d", used)
	}
}

func TestHappiness_每工人扣五(t *testing.T) {
	h := Happiness(map[string]int{"timber_camp": 2, "quarry": 3})
	if h != 100-5*5 {
		t.Fatalf("期望 75，got=%d", h)
	}
}

func TestTrainCost_批量线性(t *testing.T) {
	u := &unit.Unit{ID: "manticore", Kind: unit.KindMythic, Population: 45,
		Cost: unit.Cost{Wood: 4500, Stone: 3000, Silver: 4400, Favor: 180}, TrainTimeS: 5400}
	c := TrainCost(u, 3)
	if c.Resources.Wood != 13500 || c.Favor != 540 || c.TimeS != 16200 || c.Population != 135 {
		t.Fatalf("批量成本应线性放大，got=%+v", c)
	}
}

func TestHealCost_资源减半人口全额(t *testing.T) {
	u := &unit.Unit{ID: "hoplite", Kind: unit.KindLand, Population: 1,
		Cost: unit.Cost{Wood: 0, Stone: 75, Silver: 150}, TrainTimeS: 900}
	c := HealCost(u, 4)
	if c.Resources.Stone != 150 || c.Resources.Silver != 300 {
		t.Fatalf("治疗资源应为训练一半，got=%+v", c)
	}
	if c.Population != 4 {
		t.Fatalf("治疗人口按全额计，got=%d", c.Population)
	}
	if c.Favor != 0 {
		t.Fatalf("治疗不消耗信仰，got=%d", c.Favor)
	}
}
