package app

import (
	"context"
	"errors"
	"testing"
	"time"

	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/movement/domain"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
	"IslandKingdoms/internal/shared/gameconfig/unit"
	"IslandKingdoms/internal/travel"
	"IslandKingdoms/modules/kit/logx"
)

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

type fakeMovementRepo struct {
	movements map[int64]*domain.Movement
}

func (r *fakeMovementRepo) Get(_ context.Context, id int64) (*domain.Movement, error) {
	return r.movements[id], nil
}

func (r *fakeMovementRepo) Insert(_ context.Context, m *domain.Movement) error {
	r.movements[m.ID] = m
	return nil
}

func (r *fakeMovementRepo) Update(_ context.Context, m *domain.Movement) error {
	r.movements[m.ID] = m
	return nil
}

func (r *fakeMovementRepo) Delete(_ context.Context, id int64) error {
	delete(r.movements, id)
	return nil
}

func (r *fakeMovementRepo) ListByPlayer(_ context.Context, playerID int64) ([]*domain.Movement, error) {
	var out []*domain.Movement
	for _, m := range r.movements {
		if m.PlayerID == playerID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeReinforcementRepo struct {
	ledgers map[int64]*domain.ReinforcementLedger
}

func (r *fakeReinforcementRepo) Get(_ context.Context, targetCityID int64) (*domain.ReinforcementLedger, error) {
	return r.ledgers[targetCityID], nil
}

func (r *fakeReinforcementRepo) Save(_ context.Context, l *domain.ReinforcementLedger) error {
	r.ledgers[l.TargetCityID] = l
	return nil
}

type fakeCityStore struct {
	cities map[citydomain.CityID]*citydomain.City
}

func (r *fakeCityStore) Get(_ context.Context, id citydomain.CityID) (*citydomain.City, error) {
	return r.cities[id], nil
}

func (r *fakeCityStore) Save(_ context.Context, c *citydomain.City) error {
	r.cities[c.ID] = c
	return nil
}

type fakeWorld struct {
	cond travel.Conditions
}

func (w fakeWorld) Conditions(context.Context) (travel.Conditions, error) {
	return w.cond, nil
}

type fakeTx struct{}

func (fakeTx) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func testTables() Tables {
	bt := building.NewTable([]building.Building{
		{ID: building.Senate, Kind: building.KindSpecial, MaxLevel: 25,
			BaseCost: building.Cost{Wood: 200, Stone: 150}, CostGrowth: 1.3, BaseTimeS: 60},
		{ID: building.Warehouse, Kind: building.KindStorage, MaxLevel: 25,
			BaseCost: building.Cost{Wood: 100, Stone: 120}, CostGrowth: 1.35, BaseTimeS: 180,
			BaseCapacity: 1500, CapacityGrowth: 1.4},
		{ID: building.Farm, Kind: building.KindStorage, MaxLevel: 25,
			BaseCost: building.Cost{Wood: 80, Stone: 60}, CostGrowth: 1.3, BaseTimeS: 150,
			BaseCapacity: 3000, CapacityGrowth: 1.3},
		{ID: building.Market, Kind: building.KindStorage, MaxLevel: 20,
			BaseCost: building.Cost{Wood: 120, Stone: 100}, CostGrowth: 1.3, BaseTimeS: 200,
			BaseCapacity: 500, CapacityGrowth: 1.3},
	})
	ut := unit.NewTable([]unit.Unit{
		{ID: "swordsman", Kind: unit.KindLand, Speed: 8, Population: 1,
			Cost: unit.Cost{Wood: 95, Silver: 85}, TrainTimeS: 600},
		{ID: "transport_ship", Kind: unit.KindNaval, Speed: 10, Population: 5,
			Cost: unit.Cost{Wood: 500, Silver: 200}, TrainTimeS: 1800, TransportCap: 25},
		{ID: "harpy", Kind: unit.KindMythic, Speed: 12, Population: 14, God: "zeus",
			Cost: unit.Cost{Wood: 600, Silver: 400, Favor: 60}, TrainTimeS: 2400, Flying: true},
		{ID: unit.Villager, Kind: unit.KindLand, Speed: 4, Population: 1,
			Cost: unit.Cost{Wood: 200, Silver: 100}, TrainTimeS: 900},
	})
	gt := god.NewTable(nil, nil)
	return Tables{Units: ut, Buildings: bt, Gods: gt}
}

func newTestService() (*DispatchService, *fakeMovementRepo, *fakeReinforcementRepo, *fakeCityStore, *fakeClock) {
	movements := &fakeMovementRepo{movements: make(map[int64]*domain.Movement)}
	reinforcements := &fakeReinforcementRepo{ledgers: make(map[int64]*domain.ReinforcementLedger)}
	cities := &fakeCityStore{cities: make(map[citydomain.CityID]*citydomain.City)}
	clk := &fakeClock{now: t0}
	var n int64
	nextID := func() int64 { n++; return n }
	// rand01 固定 0.5：晴天风速 5，风修正恰为 1。
	svc := NewDispatchService(movements, reinforcements, cities, fakeWorld{}, fakeTx{}, clk,
		nextID, logx.Nop(), nil, testTables(), travel.DefaultWorldSpeed, func() float64 { return 0.5 })
	return svc, movements, reinforcements, cities, clk
}

func seedCity(cities *fakeCityStore) *citydomain.City {
	c := citydomain.NewCity(1, 100, 1, 1, 0, 0, "Alexandria", t0)
	c.Resources = economy.Resources{Wood: 1000, Stone: 1000, Silver: 1000}
	cities.cities[c.ID] = c
	return c
}

func crossIslandTarget() Target {
	return Target{Kind: domain.TargetCity, CityID: 9, Point: domain.Point{IslandID: 2, X: 10, Y: 0}}
}

func TestAttack_跨岛陆军运力不足拒绝并报差额(t *testing.T) {
	svc, _, _, cities, _ := newTestService()
	c := seedCity(cities)
	c.Units["swordsman"] = 50

	_, err := svc.Attack(context.Background(), 100, 1, crossIslandTarget(),
		map[string]int64{"swordsman": 50}, nil)
	if !errors.Is(err, ErrNoTransport) {
		t.Fatalf("期望 ErrNoTransport，got=%v", err)
	}
	if c.Units["swordsman"] != 50 {
		t.Fatalf("拒绝不应扣兵")
	}

	// 补上两艘运输船（运力 50）后派遣成功。
	c.Units["transport_ship"] = 2
	m, err := svc.Attack(context.Background(), 100, 1, crossIslandTarget(),
		map[string]int64{"swordsman": 50, "transport_ship": 2}, nil)
	if err != nil {
		t.Fatalf("派遣失败: %v", err)
	}
	if c.Units["swordsman"] != 0 || c.Units["transport_ship"] != 0 {
		t.Fatalf("派遣应扣光出征兵力")
	}
	// 最慢兵种 8，晴天风修正 1：10 格 / (8×5) × 3600 = 900s。
	if got := m.ArrivalTime.Sub(m.DepartureTime); got != 900*time.Second {
		t.Fatalf("期望行程 900s，got=%v", got)
	}
	if got := m.CancellableUntil.Sub(m.DepartureTime); got != GraceWindow {
		t.Fatalf("宽限窗口应为 %v，got=%v", GraceWindow, got)
	}
}

func TestAttack_全飞行陆军无需运力(t *testing.T) {
	svc, _, _, cities, _ := newTestService()
	c := seedCity(cities)
	c.Units["harpy"] = 5

	if _, err := svc.Attack(context.Background(), 100, 1, crossIslandTarget(),
		map[string]int64{"harpy": 5}, nil); err != nil {
		t.Fatalf("飞行单位应自行跨岛: %v", err)
	}
}

func TestAttack_村庄目标只允许同岛(t *testing.T) {
	svc, _, _, cities, _ := newTestService()
	c := seedCity(cities)
	c.Units["swordsman"] = 10

	target := Target{Kind: domain.TargetVillage, Point: domain.Point{IslandID: 2, X: 5, Y: 5}}
	_, err := svc.Attack(context.Background(), 100, 1, target, map[string]int64{"swordsman": 10}, nil)
	if !errors.Is(err, ErrSameIslandOnly) {
		t.Fatalf("期望 ErrSameIslandOnly，got=%v", err)
	}

	target.Point.IslandID = 1
	if _, err := svc.Attack(context.Background(), 100, 1, target, map[string]int64{"swordsman": 10}, nil); err != nil {
		t.Fatalf("同岛村庄应可攻击: %v", err)
	}
}

func TestAttack_阵型只接受名单内的陆军(t *testing.T) {
	svc, _, _, cities, _ := newTestService()
	c := seedCity(cities)
	c.Units["swordsman"] = 10
	c.Units["transport_ship"] = 2

	units := map[string]int64{"swordsman": 10, "transport_ship": 2}
	// 海军排进阵型：拒绝。
	_, err := svc.Attack(context.Background(), 100, 1, crossIslandTarget(), units,
		&domain.Formation{Front: "transport_ship"})
	if !errors.Is(err, ErrBadFormation) {
		t.Fatalf("期望 ErrBadFormation，got=%v", err)
	}
	if _, err := svc.Attack(context.Background(), 100, 1, crossIslandTarget(), units,
		&domain.Formation{Front: "swordsman"}); err != nil {
		t.Fatalf("合法阵型应通过: %v", err)
	}
}

func TestRecall_宽限期内退回全部派遣(t *testing.T) {
	svc, movements, _, cities, clk := newTestService()
	c := seedCity(cities)
	c.Units["swordsman"] = 10

	target := Target{Kind: domain.TargetCity, CityID: 9, Point: domain.Point{IslandID: 1, X: 6, Y: 8}}
	m, err := svc.Attack(context.Background(), 100, 1, target, map[string]int64{"swordsman": 10}, nil)
	if err != nil {
		t.Fatalf("派遣失败: %v", err)
	}

	clk.now = t0.Add(10 * time.Second)
	if err := svc.Recall(context.Background(), 100, m.ID); err != nil {
		t.Fatalf("宽限期内撤销失败: %v", err)
	}
	if c.Units["swordsman"] != 10 {
		t.Fatalf("撤销应退兵，got=%d", c.Units["swordsman"])
	}
	if movements.movements[m.ID] != nil {
		t.Fatalf("撤销应删除行军记录")
	}
}

func TestRecall_过期只能折返(t *testing.T) {
	svc, _, _, cities, clk := newTestService()
	c := seedCity(cities)
	c.Units["swordsman"] = 10

	target := Target{Kind: domain.TargetCity, CityID: 9, Point: domain.Point{IslandID: 1, X: 6, Y: 8}}
	m, err := svc.Attack(context.Background(), 100, 1, target, map[string]int64{"swordsman": 10}, nil)
	if err != nil {
		t.Fatalf("派遣失败: %v", err)
	}

	clk.now = t0.Add(GraceWindow + time.Second)
	err = svc.Recall(context.Background(), 100, m.ID)
	if !errors.Is(err, ErrGraceExpired) {
		t.Fatalf("期望 ErrGraceExpired，got=%v", err)
	}
	if c.Units["swordsman"] != 0 {
		t.Fatalf("失败的撤销不应退兵")
	}
}

func TestTurnAround_回程耗时等于已走过的时间(t *testing.T) {
	svc, movements, _, cities, clk := newTestService()
	c := seedCity(cities)
	c.Units["swordsman"] = 10

	// 10 格行程 900s。
	m, err := svc.Attack(context.Background(), 100, 1,
		Target{Kind: domain.TargetCity, CityID: 9, Point: domain.Point{IslandID: 1, X: 10, Y: 0}},
		map[string]int64{"swordsman": 10}, nil)
	if err != nil {
		t.Fatalf("派遣失败: %v", err)
	}

	clk.now = t0.Add(100 * time.Second)
	if err := svc.TurnAround(context.Background(), 100, m.ID); err != nil {
		t.Fatalf("折返失败: %v", err)
	}
	got := movements.movements[m.ID]
	if got.Status != domain.StatusReturning {
		t.Fatalf("状态应为 returning，got=%s", got.Status)
	}
	if !got.ArrivalTime.Equal(clk.now.Add(100 * time.Second)) {
		t.Fatalf("回程到达应为 now+已走过时间，got=%v", got.ArrivalTime)
	}

	err = svc.TurnAround(context.Background(), 100, m.ID)
	if !errors.Is(err, ErrAlreadyReturning) {
		t.Fatalf("重复折返应拒绝，got=%v", err)
	}
}

func TestFoundCity_移民数量决定建城时长(t *testing.T) {
	svc, _, _, cities, _ := newTestService()
	c := seedCity(cities)
	c.Units[unit.Villager] = 30
	c.Units["transport_ship"] = 2

	_, err := svc.FoundCity(context.Background(), 100, 1,
		Target{Kind: domain.TargetSlot, Point: domain.Point{IslandID: 2, X: 4, Y: 3}},
		map[string]int64{"transport_ship": 1})
	if !errors.Is(err, ErrNeedsVillager) {
		t.Fatalf("无移民应拒绝，got=%v", err)
	}

	m, err := svc.FoundCity(context.Background(), 100, 1,
		Target{Kind: domain.TargetSlot, Point: domain.Point{IslandID: 2, X: 4, Y: 3}},
		map[string]int64{unit.Villager: 3, "transport_ship": 1})
	if err != nil {
		t.Fatalf("殖民派遣失败: %v", err)
	}
	if m.FoundingDuration != 75600*time.Second {
		t.Fatalf("3 名移民建城应 75600s，got=%v", m.FoundingDuration)
	}

	m, err = svc.FoundCity(context.Background(), 100, 1,
		Target{Kind: domain.TargetSlot, Point: domain.Point{IslandID: 2, X: 7, Y: 3}},
		map[string]int64{unit.Villager: 24, "transport_ship": 1})
	if err != nil {
		t.Fatalf("殖民派遣失败: %v", err)
	}
	if m.FoundingDuration != 3600*time.Second {
		t.Fatalf("24 名移民应触底 3600s，got=%v", m.FoundingDuration)
	}
}

func TestScout_只动洞穴白银(t *testing.T) {
	svc, _, _, cities, _ := newTestService()
	c := seedCity(cities)
	c.CaveSilver = 100

	m, err := svc.Scout(context.Background(), 100, 1, crossIslandTarget(), 60)
	if err != nil {
		t.Fatalf("侦察派遣失败: %v", err)
	}
	if c.CaveSilver != 40 {
		t.Fatalf("洞穴白银应扣 60，got=%d", c.CaveSilver)
	}
	if c.Resources.Silver != 1000 {
		t.Fatalf("城市白银不应被动用，got=%d", c.Resources.Silver)
	}
	// 10 格 × 10s/格 = 100s，在 [15,300] 内。
	if got := m.ArrivalTime.Sub(m.DepartureTime); got != 100*time.Second {
		t.Fatalf("侦察行程期望 100s，got=%v", got)
	}

	_, err = svc.Scout(context.Background(), 100, 1, crossIslandTarget(), 41)
	if !errors.Is(err, ErrNotEnoughSilver) {
		t.Fatalf("期望 ErrNotEnoughSilver，got=%v", err)
	}
}

func TestSendResources_受市场容量约束(t *testing.T) {
	svc, _, _, cities, _ := newTestService()
	c := seedCity(cities)
	c.Buildings[building.Market] = &citydomain.BuildingState{Level: 1}

	// 1 级市场容量 500。
	_, err := svc.SendResources(context.Background(), 100, 1, crossIslandTarget(),
		economy.Resources{Wood: 400, Stone: 200})
	if !errors.Is(err, ErrMarketCapacity) {
		t.Fatalf("期望 ErrMarketCapacity，got=%v", err)
	}

	if _, err := svc.SendResources(context.Background(), 100, 1, crossIslandTarget(),
		economy.Resources{Wood: 300, Stone: 100}); err != nil {
		t.Fatalf("容量内运输失败: %v", err)
	}
	if c.Resources.Wood != 700 || c.Resources.Stone != 900 {
		t.Fatalf("运输应扣资源，got=%+v", c.Resources)
	}
}

func TestWithdrawReinforcements_只能撤自己的条目(t *testing.T) {
	svc, movements, reinforcements, cities, _ := newTestService()
	origin := seedCity(cities)
	target := citydomain.NewCity(5, 200, 2, 2, 10, 0, "Thebes", t0)
	cities.cities[target.ID] = target

	reinforcements.ledgers[5] = &domain.ReinforcementLedger{
		TargetCityID: 5,
		Entries: map[int64]domain.ReinforcementEntry{
			1: {OwnerID: 100, OriginCityName: origin.Name, Units: map[string]int64{"harpy": 4}},
			2: {OwnerID: 300, OriginCityName: "Sparta", Units: map[string]int64{"swordsman": 8}},
		},
	}

	// 别人的条目撤不动。
	_, err := svc.WithdrawReinforcements(context.Background(), 100, 5, 2)
	if !errors.Is(err, ErrNoReinforcements) {
		t.Fatalf("期望 ErrNoReinforcements，got=%v", err)
	}

	m, err := svc.WithdrawReinforcements(context.Background(), 100, 5, 1)
	if err != nil {
		t.Fatalf("撤回失败: %v", err)
	}
	if m.Type != domain.TypeReturn || m.Units["harpy"] != 4 {
		t.Fatalf("应生成携带原驻防的返程行军，got=%+v", m)
	}
	if _, ok := reinforcements.ledgers[5].Entries[1]; ok {
		t.Fatalf("撤回后台账条目应删除")
	}
	if _, ok := reinforcements.ledgers[5].Entries[2]; !ok {
		t.Fatalf("他人条目不应被波及")
	}
	if movements.movements[m.ID] == nil {
		t.Fatalf("返程行军应落账")
	}
}

func TestAssignHero_离城在途且撤销放回(t *testing.T) {
	svc, _, _, cities, clk := newTestService()
	c := seedCity(cities)
	c.HeroID = "leonidas"

	target := Target{Kind: domain.TargetCity, CityID: 9, Point: domain.Point{IslandID: 1, X: 7, Y: 0}}
	if _, err := svc.AssignHero(context.Background(), 100, 1, target, "brasidas"); !errors.Is(err, ErrNoHero) {
		t.Fatalf("派不存在的英雄应拒绝，got=%v", err)
	}

	m, err := svc.AssignHero(context.Background(), 100, 1, target, "leonidas")
	if err != nil {
		t.Fatalf("派遣失败: %v", err)
	}
	if !c.HeroAway {
		t.Fatalf("派遣后英雄应为在途")
	}
	if m.Type != domain.TypeAssignHero || m.HeroID != "leonidas" {
		t.Fatalf("行军记录应携带英雄 id，got=%+v", m)
	}
	// 英雄速度 14：7 格 / (14×5) × 3600 = 360s。
	if got := m.ArrivalTime.Sub(m.DepartureTime); got != 360*time.Second {
		t.Fatalf("期望行程 360s，got=%v", got)
	}

	if _, err := svc.AssignHero(context.Background(), 100, 1, target, "leonidas"); !errors.Is(err, ErrHeroAway) {
		t.Fatalf("在途英雄不应可再次派出，got=%v", err)
	}

	clk.now = t0.Add(10 * time.Second)
	if err := svc.Recall(context.Background(), 100, m.ID); err != nil {
		t.Fatalf("宽限期内撤销失败: %v", err)
	}
	if c.HeroAway {
		t.Fatalf("撤销应把英雄放回城里")
	}
}
