package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/shared/cache"
	"IslandKingdoms/internal/shared/observer"
	"IslandKingdoms/internal/shared/utils"
	"IslandKingdoms/internal/travel"
	"IslandKingdoms/internal/world/domain"
)

const (
	// 一次抓取的候选空位数。
	slotBatchSize = 10

	defaultSlotClaimRetry = 3
	claimBackoffBase      = 100 * time.Millisecond
)

// WorldService 维护全服共享的世界状态：城位归属与季节天气。
//
// 抢占空城位是全游戏唯一带重试退避的写路径：候选批里的每个城位
// 单独开事务重读，被抢走就跳下一个，整批落空再退避重抓，
// 超过重试上限才对玩家报"世界已满"。
type WorldService struct {
	slots  SlotRepo
	worlds WorldRepo
	cities CityStore
	tx     TxRunner
	clock  utils.Clock
	nextID IDGen
	cache  *cache.TTLCache
	log    Logger
	hub    *observer.Hub

	worldID    int64
	retryLimit int
	sleep      func(time.Duration)
}

func NewWorldService(slots SlotRepo, worlds WorldRepo, cities CityStore, tx TxRunner, clock utils.Clock, nextID IDGen, c *cache.TTLCache, log Logger, hub *observer.Hub, worldID int64, retryLimit int) *WorldService {
	if retryLimit <= 0 {
		retryLimit = defaultSlotClaimRetry
	}
	return &WorldService{
		slots:      slots,
		worlds:     worlds,
		cities:     cities,
		tx:         tx,
		clock:      clock,
		nextID:     nextID,
		cache:      c,
		log:        log,
		hub:        hub,
		worldID:    worldID,
		retryLimit: retryLimit,
		sleep:      time.Sleep,
	}
}

// ClaimSlot 给玩家在某个空城位上落一座新城。
// 候选批逐个试抢，整批落空退避后重抓，重试耗尽报世界已满。
func (s *WorldService) ClaimSlot(ctx context.Context, playerID int64, cityName string) (*citydomain.City, error) {
	for attempt := 0; attempt <= s.retryLimit; attempt++ {
		batch, err := s.slots.ListEmpty(ctx, slotBatchSize)
		if err != nil {
			return nil, ErrUnavailable.WithCause(err)
		}
		for _, cand := range batch {
			c, err := s.tryClaim(ctx, playerID, cityName, cand.ID)
			if err == nil {
				s.invalidateAggregates()
				s.publishSlot(cand.ID)
				return c, nil
			}
			if errors.Is(err, ErrSlotTaken) {
				continue
			}
			return nil, err
		}
		if attempt < s.retryLimit {
			s.sleep(claimBackoffBase << attempt)
		}
	}
	return nil, ErrWorldFull
}

// tryClaim 在一个事务里重读城位并落城。归属以事务内读到的为准，
// 候选批里的快照可能早已过期。
func (s *WorldService) tryClaim(ctx context.Context, playerID int64, cityName string, slotID int64) (*citydomain.City, error) {
	var created *citydomain.City
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		slot, err := s.slots.Get(ctx, slotID)
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if slot == nil {
			return ErrSlotTaken.WithData("slot_id", slotID)
		}

		cityID := s.nextID()
		if !slot.Claim(playerID, cityID) {
			return ErrSlotTaken.WithData("slot_id", slotID)
		}

		c := citydomain.NewCity(citydomain.CityID(cityID), citydomain.PlayerID(playerID),
			slot.ID, slot.IslandID, slot.X, slot.Y, cityName, s.clock.Now())
		if err := s.slots.Save(ctx, slot); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.cities.Save(ctx, c); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Conditions 返回当前季节与天气，喂给行军计算。短 TTL 缓存。
func (s *WorldService) Conditions(ctx context.Context) (travel.Conditions, error) {
	key := s.conditionsKey()
	if v, ok := s.cache.Get(key); ok {
		return v.(travel.Conditions), nil
	}
	w, err := s.worlds.Get(ctx, s.worldID)
	if err != nil {
		return travel.Conditions{}, ErrUnavailable.WithCause(err)
	}
	if w == nil {
		return travel.Conditions{}, ErrWorldNotFound.WithData("world_id", s.worldID)
	}
	cond := w.Conditions()
	s.cache.Set(key, cond)
	return cond, nil
}

// SetConditions 更新季节天气（由运营计划任务调用），并立即失效缓存。
func (s *WorldService) SetConditions(ctx context.Context, season travel.Season, weather travel.Weather) error {
	w, err := s.worlds.Get(ctx, s.worldID)
	if err != nil {
		return ErrUnavailable.WithCause(err)
	}
	if w == nil {
		w = &domain.World{ID: s.worldID}
	}
	w.Season = season
	w.Weather = weather
	w.UpdatedAt = s.clock.Now()
	if err := s.worlds.Save(ctx, w); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	s.cache.Invalidate(s.conditionsKey())
	if s.hub != nil {
		s.hub.Publish(observer.Event{Collection: "world", DocID: strconv.FormatInt(s.worldID, 10)})
	}
	return nil
}

// EmptySlotCount 是给世界视图用的聚合查询，走 TTL 缓存。
func (s *WorldService) EmptySlotCount(ctx context.Context) (int64, error) {
	key := s.emptyCountKey()
	if v, ok := s.cache.Get(key); ok {
		return v.(int64), nil
	}
	n, err := s.slots.CountEmpty(ctx)
	if err != nil {
		return 0, ErrUnavailable.WithCause(err)
	}
	s.cache.Set(key, n)
	return n, nil
}

func (s *WorldService) invalidateAggregates() {
	s.cache.Invalidate(s.emptyCountKey())
}

func (s *WorldService) conditionsKey() string {
	return fmt.Sprintf("world:%d:conditions", s.worldID)
}

func (s *WorldService) emptyCountKey() string {
	return fmt.Sprintf("world:%d:empty_slots", s.worldID)
}

func (s *WorldService) publishSlot(slotID int64) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(observer.Event{Collection: "slot", DocID: strconv.FormatInt(slotID, 10)})
}
