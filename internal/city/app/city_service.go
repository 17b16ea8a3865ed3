package app

import (
	"context"
	"strconv"
	"time"

	"IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
	"IslandKingdoms/internal/shared/gameconfig/research"
	"IslandKingdoms/internal/shared/gameconfig/unit"
	"IslandKingdoms/internal/shared/observer"
	"IslandKingdoms/internal/shared/utils"
)

// Tables 把全部数值表作为显式依赖注入，服务不直接摸包级单例。
type Tables struct {
	Buildings *building.Table
	Units     *unit.Table
	Research  *research.Table
	Gods      *god.Table
}

// CityService 承载玩家对自己城市的全部原子操作。
//
// 每个动作都是一次守卫式状态迁移：事务内重新加载城市、对着这份
// 权威快照校验全部前置条件、计算新状态、原子提交。UI 缓存的旧状态
// 从不参与校验。
type CityService struct {
	cities CityRepo
	tx     TxRunner
	clock  utils.Clock
	nextID IDGen
	log    Logger
	hub    *observer.Hub
	tables Tables

	// instantBuild 压平所有任务时长到 1 秒，仅限联调/压测环境。
	instantBuild bool
}

func NewCityService(cities CityRepo, tx TxRunner, clock utils.Clock, nextID IDGen, log Logger, hub *observer.Hub, tables Tables, instantBuild bool) *CityService {
	return &CityService{
		cities:       cities,
		tx:           tx,
		clock:        clock,
		nextID:       nextID,
		log:          log,
		hub:          hub,
		tables:       tables,
		instantBuild: instantBuild,
	}
}

// withCity 是所有城市动作的事务骨架：
// 事务内取城 → 校验归属 → 补算离线进度 → 动作校验与变更 → 落库。
// mutate 返回业务错误时整个事务回滚，城市状态不产生任何改动。
func (s *CityService) withCity(ctx context.Context, id domain.CityID, playerID domain.PlayerID, mutate func(c *domain.City) error) error {
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		c, err := s.cities.Get(ctx, id)
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if c == nil {
			return ErrCityNotFound.WithData("city_id", int64(id))
		}
		if playerID != 0 && c.PlayerID != playerID {
			return ErrNotOwner.WithData("city_id", int64(id))
		}
		c.Reconcile(s.tables.Buildings, s.tables.Gods, s.clock.Now())
		if err := mutate(c); err != nil {
			return err
		}
		return s.saveCity(ctx, c)
	})
	if err == nil && s.hub != nil {
		// 提交成功后的乐观推送；权威快照仍以变更流推送为准。
		s.hub.Publish(observer.Event{Collection: "city", DocID: strconv.FormatInt(int64(id), 10)})
	}
	return err
}

func (s *CityService) saveCity(ctx context.Context, c *domain.City) error {
	if err := s.cities.Save(ctx, c); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	return nil
}

// Reconcile 只做补算落库，不附带任何动作。城市被加载/点开时调用。
func (s *CityService) Reconcile(ctx context.Context, id domain.CityID) error {
	return s.withCity(ctx, id, 0, func(c *domain.City) error {
		return nil
	})
}

// Get 返回补算后的城市状态（只读，不落库）。
func (s *CityService) Get(ctx context.Context, id domain.CityID) (*domain.City, error) {
	c, err := s.cities.Get(ctx, id)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	if c == nil {
		return nil, ErrCityNotFound.WithData("city_id", int64(id))
	}
	c.Reconcile(s.tables.Buildings, s.tables.Gods, s.clock.Now())
	return c, nil
}

// duration 应用联调加速：instantBuild 下全部任务 1 秒完成。
func (s *CityService) duration(seconds int64) time.Duration {
	if s.instantBuild {
		return time.Second
	}
	return time.Duration(seconds) * time.Second
}
