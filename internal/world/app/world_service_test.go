package app

import (
	"context"
	"errors"
	"testing"
	"time"

	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/shared/cache"
	"IslandKingdoms/internal/travel"
	"IslandKingdoms/internal/world/domain"
	"IslandKingdoms/modules/kit/logx"
)

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot

	// 每次 Get 前回调，用来在事务重读前模拟别的玩家抢位。
	beforeGet func(id int64)

	listCalls int
}

func (r *fakeSlotRepo) Get(_ context.Context, id int64) (*domain.Slot, error) {
	if r.beforeGet != nil {
		r.beforeGet(id)
	}
	return r.slots[id], nil
}

func (r *fakeSlotRepo) Save(_ context.Context, s *domain.Slot) error {
	r.slots[s.ID] = s
	return nil
}

func (r *fakeSlotRepo) ListEmpty(_ context.Context, limit int) ([]*domain.Slot, error) {
	r.listCalls++
	var out []*domain.Slot
	for id := int64(1); id <= int64(len(r.slots)) && len(out) < limit; id++ {
		if s, ok := r.slots[id]; ok && s.Empty() {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) CountEmpty(_ context.Context) (int64, error) {
	var n int64
	for _, s := range r.slots {
		if s.Empty() {
			n++
		}
	}
	return n, nil
}

type fakeWorldRepo struct {
	worlds map[int64]*domain.World

	getCalls int
}

func (r *fakeWorldRepo) Get(_ context.Context, id int64) (*domain.World, error) {
	r.getCalls++
	return r.worlds[id], nil
}

func (r *fakeWorldRepo) Save(_ context.Context, w *domain.World) error {
	r.worlds[w.ID] = w
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

func newTestService(slots *fakeSlotRepo, worlds *fakeWorldRepo) (*WorldService, *fakeCityStore, *[]time.Duration) {
	cities := &fakeCityStore{cities: make(map[citydomain.CityID]*citydomain.City)}
	clock := &fakeClock{now: t0}
	var n int64
	nextID := func() int64 { n++; return n }
	svc := NewWorldService(slots, worlds, cities, fakeTx{}, clock, nextID,
		cache.NewTTLCache(30*time.Second, clock), logx.Nop(), nil, 1, 2)
	var slept []time.Duration
	svc.sleep = func(d time.Duration) { slept = append(slept, d) }
	return svc, cities, &slept
}

func seedSlots(n int) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[int64]*domain.Slot)}
	for i := 1; i <= n; i++ {
		r.slots[int64(i)] = &domain.Slot{ID: int64(i), IslandID: 1, X: i, Y: 0}
	}
	return r
}

func TestClaimSlot_落城并占位(t *testing.T) {
	slots := seedSlots(3)
	svc, cities, _ := newTestService(slots, &fakeWorldRepo{})

	c, err := svc.ClaimSlot(context.Background(), 100, "新城")
	if err != nil {
		t.Fatalf("抢位失败: %v", err)
	}
	if c.PlayerID != 100 || c.SlotID != 1 {
		t.Fatalf("新城归属不对: %+v", c)
	}
	if slots.slots[1].OwnerPlayerID != 100 || slots.slots[1].OwnerCityID != int64(c.ID) {
		t.Fatalf("城位未记录归属: %+v", slots.slots[1])
	}
	if cities.cities[c.ID] == nil {
		t.Fatalf("新城未落账")
	}
}

func TestClaimSlot_候选被抢后跳到下一个(t *testing.T) {
	slots := seedSlots(3)
	// 前两个候选在事务重读前被别人抢走。
	slots.beforeGet = func(id int64) {
		if id <= 2 && slots.slots[id].Empty() {
			slots.slots[id].Claim(999, 9000+id)
		}
	}
	svc, _, slept := newTestService(slots, &fakeWorldRepo{})

	c, err := svc.ClaimSlot(context.Background(), 100, "新城")
	if err != nil {
		t.Fatalf("应跳过被抢的候选: %v", err)
	}
	if c.SlotID != 3 {
		t.Fatalf("应落在第三个候选上，got=%d", c.SlotID)
	}
	if len(*slept) != 0 {
		t.Fatalf("同一批内跳过不应退避")
	}
}

func TestClaimSlot_重试耗尽报世界已满(t *testing.T) {
	slots := seedSlots(2)
	// 所有候选在事务重读前都被抢走。
	slots.beforeGet = func(id int64) {
		if slots.slots[id].Empty() {
			slots.slots[id].Claim(999, 9000+id)
		}
	}
	svc, _, slept := newTestService(slots, &fakeWorldRepo{})

	_, err := svc.ClaimSlot(context.Background(), 100, "新城")
	if !errors.Is(err, ErrWorldFull) {
		t.Fatalf("应报世界已满，got=%v", err)
	}
	// retryLimit=2：首轮 + 两次重试，共两次退避，退避逐轮加倍。
	if slots.listCalls != 3 {
		t.Fatalf("应抓三批候选，got=%d", slots.listCalls)
	}
	if len(*slept) != 2 || (*slept)[1] != 2*(*slept)[0] {
		t.Fatalf("退避应逐轮加倍: %v", *slept)
	}
}

func TestConditions_走缓存且更新后立即失效(t *testing.T) {
	worlds := &fakeWorldRepo{worlds: map[int64]*domain.World{
		1: {ID: 1, Season: travel.SeasonSummer, Weather: travel.WeatherClear},
	}}
	svc, _, _ := newTestService(seedSlots(1), worlds)

	cond, err := svc.Conditions(context.Background())
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if cond.Season != travel.SeasonSummer {
		t.Fatalf("季节不对: %+v", cond)
	}
	if _, err := svc.Conditions(context.Background()); err != nil {
		t.Fatalf("二读失败: %v", err)
	}
	if worlds.getCalls != 1 {
		t.Fatalf("第二次应命中缓存，getCalls=%d", worlds.getCalls)
	}

	if err := svc.SetConditions(context.Background(), travel.SeasonWinter, travel.WeatherStorm); err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	cond, err = svc.Conditions(context.Background())
	if err != nil {
		t.Fatalf("三读失败: %v", err)
	}
	if cond.Season != travel.SeasonWinter || cond.Weather != travel.WeatherStorm {
		t.Fatalf("更新后应读到新值: %+v", cond)
	}
}

func TestEmptySlotCount_抢位后聚合缓存失效(t *testing.T) {
	slots := seedSlots(3)
	svc, _, _ := newTestService(slots, &fakeWorldRepo{})

	n, err := svc.EmptySlotCount(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("空位数应为 3: n=%d err=%v", n, err)
	}
	if _, err := svc.ClaimSlot(context.Background(), 100, "新城"); err != nil {
		t.Fatalf("抢位失败: %v", err)
	}
	n, err = svc.EmptySlotCount(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("抢位后空位数应为 2: n=%d err=%v", n, err)
	}
}
