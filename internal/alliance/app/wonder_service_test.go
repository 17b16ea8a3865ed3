package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"IslandKingdoms/internal/alliance/domain"
	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
	"IslandKingdoms/internal/shared/gameconfig/wonder"
	"IslandKingdoms/modules/kit/logx"
)

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

type fakeAllianceRepo struct {
	alliances map[domain.AllianceID]*domain.Alliance
}

func (r *fakeAllianceRepo) Get(_ context.Context, id domain.AllianceID) (*domain.Alliance, error) {
	return r.alliances[id], nil
}

func (r *fakeAllianceRepo) Save(_ context.Context, a *domain.Alliance) error {
	r.alliances[a.ID] = a
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
			BaseCapacity: 5000, CapacityGrowth: 1.4},
	})
	wc := &wonder.Config{Growth: 1.5, MaxLevel: 10}
	wc.StartCost.Wood, wc.StartCost.Stone, wc.StartCost.Silver = 500, 500, 500
	wc.BaseLevelCost.Wood, wc.BaseLevelCost.Stone, wc.BaseLevelCost.Silver = 1000, 1000, 1000
	return Tables{Buildings: bt, Gods: god.NewTable(nil, nil), Wonder: wc}
}

func newTestService() (*WonderService, *fakeAllianceRepo, *fakeCityStore) {
	alliances := &fakeAllianceRepo{alliances: make(map[domain.AllianceID]*domain.Alliance)}
	cities := &fakeCityStore{cities: make(map[citydomain.CityID]*citydomain.City)}
	svc := NewWonderService(alliances, cities, fakeTx{}, &fakeClock{now: t0}, logx.Nop(), nil, testTables())
	return svc, alliances, cities
}

func seedAlliance(alliances *fakeAllianceRepo, id domain.AllianceID, leaderID int64, members ...int64) *domain.Alliance {
	a := &domain.Alliance{ID: id, Name: "北海同盟", LeaderID: leaderID, Members: members, CreatedAt: t0}
	alliances.alliances[id] = a
	return a
}

func seedCity(cities *fakeCityStore, id citydomain.CityID, playerID citydomain.PlayerID) *citydomain.City {
	c := citydomain.NewCity(id, playerID, int64(id), 1, 0, 0, fmt.Sprintf("城%d", id), t0)
	c.Resources = economy.Resources{Wood: 2000, Stone: 2000, Silver: 2000}
	cities.cities[id] = c
	return c
}

func TestStartWonder_只有盟主能发起且启动费走自己的城(t *testing.T) {
	svc, alliances, cities := newTestService()
	a := seedAlliance(alliances, 1, 100, 200)
	leaderCity := seedCity(cities, 1, 100)
	seedCity(cities, 2, 200)

	err := svc.StartWonder(context.Background(), 200, 1, 2, 3, 5, 5)
	if !errors.Is(err, ErrNotLeader) {
		t.Fatalf("成员发起应拒绝，got=%v", err)
	}

	if err := svc.StartWonder(context.Background(), 100, 1, 1, 3, 5, 5); err != nil {
		t.Fatalf("盟主发起失败: %v", err)
	}
	if leaderCity.Resources.Wood != 1500 || leaderCity.Resources.Silver != 1500 {
		t.Fatalf("启动费应从发起人城里扣: %+v", leaderCity.Resources)
	}
	if a.Wonder == nil || a.Wonder.Level != 0 || a.Wonder.IslandID != 3 {
		t.Fatalf("奇观未正确创建: %+v", a.Wonder)
	}

	err = svc.StartWonder(context.Background(), 100, 1, 1, 3, 5, 5)
	if !errors.Is(err, ErrWonderExists) {
		t.Fatalf("已有奇观应拒绝重复发起，got=%v", err)
	}
}

func TestDonate_成员可捐且受自身余额约束(t *testing.T) {
	svc, alliances, cities := newTestService()
	a := seedAlliance(alliances, 1, 100, 200)
	seedCity(cities, 1, 100)
	member := seedCity(cities, 2, 200)
	seedCity(cities, 3, 300)

	if err := svc.StartWonder(context.Background(), 100, 1, 1, 3, 5, 5); err != nil {
		t.Fatalf("发起失败: %v", err)
	}

	if err := svc.Donate(context.Background(), 200, 1, 2, domain.ResourceWood, 800); err != nil {
		t.Fatalf("成员捐献失败: %v", err)
	}
	if member.Resources.Wood != 1200 {
		t.Fatalf("捐献应从捐献人城里扣，wood=%d", member.Resources.Wood)
	}
	if a.Wonder.Progress[domain.ResourceWood] != 800 {
		t.Fatalf("进度未入账: %+v", a.Wonder.Progress)
	}

	err := svc.Donate(context.Background(), 200, 1, 2, domain.ResourceWood, 5000)
	if !errors.Is(err, ErrNotEnoughResource) {
		t.Fatalf("超出余额的捐献应拒绝，got=%v", err)
	}
	err = svc.Donate(context.Background(), 300, 1, 3, domain.ResourceWood, 100)
	if !errors.Is(err, ErrNotMember) {
		t.Fatalf("非成员捐献应拒绝，got=%v", err)
	}
}

func TestClaimLevel_三种资源同时达标且溢出结转(t *testing.T) {
	svc, alliances, cities := newTestService()
	a := seedAlliance(alliances, 1, 100)
	seedCity(cities, 1, 100)

	if err := svc.StartWonder(context.Background(), 100, 1, 1, 3, 5, 5); err != nil {
		t.Fatalf("发起失败: %v", err)
	}
	// level 0 的成本是 1000/1000/1000。
	a.Wonder.Progress = map[string]int64{
		domain.ResourceWood:   1300,
		domain.ResourceStone:  1000,
		domain.ResourceSilver: 900,
	}

	err := svc.ClaimLevel(context.Background(), 100, 1)
	if !errors.Is(err, ErrProgressShort) {
		t.Fatalf("银币差 100 应拒绝，got=%v", err)
	}
	if a.Wonder.Level != 0 || a.Wonder.Progress[domain.ResourceWood] != 1300 {
		t.Fatalf("拒绝后进度不得变动: %+v", a.Wonder)
	}

	a.Wonder.Progress[domain.ResourceSilver] = 1000
	if err := svc.ClaimLevel(context.Background(), 100, 1); err != nil {
		t.Fatalf("领取失败: %v", err)
	}
	if a.Wonder.Level != 1 {
		t.Fatalf("等级应为 1，got=%d", a.Wonder.Level)
	}
	if a.Wonder.Progress[domain.ResourceWood] != 300 ||
		a.Wonder.Progress[domain.ResourceStone] != 0 ||
		a.Wonder.Progress[domain.ResourceSilver] != 0 {
		t.Fatalf("多捐的木材应结转而不是清零: %+v", a.Wonder.Progress)
	}
}

func TestClaimLevel_成本按等级几何增长(t *testing.T) {
	svc, _, _ := newTestService()

	c0 := svc.LevelCost(0)
	c2 := svc.LevelCost(2)
	if c0[domain.ResourceWood] != 1000 {
		t.Fatalf("level 0 成本应为基数，got=%d", c0[domain.ResourceWood])
	}
	if c2[domain.ResourceWood] != 2250 {
		t.Fatalf("level 2 成本应为 1000×1.5²=2250，got=%d", c2[domain.ResourceWood])
	}
}

func TestDemolish_盟主拆除清空且不退款(t *testing.T) {
	svc, alliances, cities := newTestService()
	a := seedAlliance(alliances, 1, 100, 200)
	leaderCity := seedCity(cities, 1, 100)

	if err := svc.StartWonder(context.Background(), 100, 1, 1, 3, 5, 5); err != nil {
		t.Fatalf("发起失败: %v", err)
	}
	a.Wonder.Progress[domain.ResourceWood] = 700

	err := svc.Demolish(context.Background(), 200, 1)
	if !errors.Is(err, ErrNotLeader) {
		t.Fatalf("成员拆除应拒绝，got=%v", err)
	}

	if err := svc.Demolish(context.Background(), 100, 1); err != nil {
		t.Fatalf("拆除失败: %v", err)
	}
	if a.Wonder != nil {
		t.Fatalf("拆除后奇观应清空")
	}
	if leaderCity.Resources.Wood != 1500 {
		t.Fatalf("拆除不退款，wood=%d", leaderCity.Resources.Wood)
	}
}
