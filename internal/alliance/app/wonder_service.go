package app

import (
	"context"
	"math"
	"strconv"

	"IslandKingdoms/internal/alliance/domain"
	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
	"IslandKingdoms/internal/shared/gameconfig/wonder"
	"IslandKingdoms/internal/shared/observer"
	"IslandKingdoms/internal/shared/utils"
	"IslandKingdoms/modules/kit/errx"
)

type Tables struct {
	Buildings *building.Table
	Gods      *god.Table
	Wonder    *wonder.Config
}

// WonderService 承载联盟奇观的建造协作：
// 发起和领取等级只有盟主能做，捐献对全体成员开放。
// 所有写操作都在事务内重读联盟文档，并发捐献/领取由事务边界裁决。
type WonderService struct {
	alliances AllianceRepo
	cities    CityStore
	tx        TxRunner
	clock     utils.Clock
	log       Logger
	hub       *observer.Hub
	tables    Tables
}

func NewWonderService(alliances AllianceRepo, cities CityStore, tx TxRunner, clock utils.Clock, log Logger, hub *observer.Hub, tables Tables) *WonderService {
	return &WonderService{
		alliances: alliances,
		cities:    cities,
		tx:        tx,
		clock:     clock,
		log:       log,
		hub:       hub,
		tables:    tables,
	}
}

// StartWonder 发起建造：固定启动成本从发起人自己的城扣，不走联盟池。
func (s *WonderService) StartWonder(ctx context.Context, playerID, allianceID, cityID, islandID int64, x, y int) error {
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		a, err := s.loadAlliance(ctx, allianceID)
		if err != nil {
			return err
		}
		if !a.IsLeader(playerID) {
			return ErrNotLeader
		}
		if a.Wonder != nil {
			return ErrWonderExists
		}

		c, err := s.loadOwnCity(ctx, playerID, cityID)
		if err != nil {
			return err
		}
		sc := s.tables.Wonder.StartCost
		if c.Resources.Wood < sc.Wood || c.Resources.Stone < sc.Stone || c.Resources.Silver < sc.Silver {
			return ErrNotEnoughResource.WithData("need", sc)
		}
		c.Resources.Wood -= sc.Wood
		c.Resources.Stone -= sc.Stone
		c.Resources.Silver -= sc.Silver

		a.Wonder = &domain.Wonder{
			IslandID: islandID,
			X:        x,
			Y:        y,
			Level:    0,
			Progress: make(map[string]int64),
		}
		if err := s.cities.Save(ctx, c); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.alliances.Save(ctx, a); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(allianceID)
	return nil
}

// Donate 捐献一笔资源：从捐献人自己的城扣，记入联盟进度累加器。
func (s *WonderService) Donate(ctx context.Context, playerID, allianceID, cityID int64, resource string, amount int64) error {
	if !validResource(resource) || amount < 1 {
		return errx.ErrReqParamERR.WithData("resource", resource).WithData("amount", amount)
	}

	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		a, err := s.loadAlliance(ctx, allianceID)
		if err != nil {
			return err
		}
		if !a.IsMember(playerID) {
			return ErrNotMember
		}
		if a.Wonder == nil {
			return ErrNoWonder
		}

		c, err := s.loadOwnCity(ctx, playerID, cityID)
		if err != nil {
			return err
		}
		if !subResource(c, resource, amount) {
			return ErrNotEnoughResource.WithData("resource", resource)
		}
		a.Donate(resource, amount)

		if err := s.cities.Save(ctx, c); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.alliances.Save(ctx, a); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(allianceID)
	return nil
}

// ClaimLevel 领取一级：三种资源的进度必须同时够本级成本，
// 扣掉的恰好是成本，多捐的部分结转，不清零。
func (s *WonderService) ClaimLevel(ctx context.Context, playerID, allianceID int64) error {
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		a, err := s.loadAlliance(ctx, allianceID)
		if err != nil {
			return err
		}
		if !a.IsLeader(playerID) {
			return ErrNotLeader
		}
		if a.Wonder == nil {
			return ErrNoWonder
		}
		if a.Wonder.Level >= s.tables.Wonder.MaxLevel {
			return ErrWonderMaxLevel
		}

		cost := s.LevelCost(a.Wonder.Level)
		if !a.ClaimLevel(cost) {
			return ErrProgressShort.WithData("need", cost).WithData("progress", a.Wonder.Progress)
		}
		if err := s.alliances.Save(ctx, a); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(allianceID)
	return nil
}

// Demolish 拆除奇观：等级和进度全部清掉，不退任何资源。
func (s *WonderService) Demolish(ctx context.Context, playerID, allianceID int64) error {
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		a, err := s.loadAlliance(ctx, allianceID)
		if err != nil {
			return err
		}
		if !a.IsLeader(playerID) {
			return ErrNotLeader
		}
		if a.Wonder == nil {
			return ErrNoWonder
		}
		a.Wonder = nil
		if err := s.alliances.Save(ctx, a); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(allianceID)
	return nil
}

// Get 返回联盟当前状态（含奇观）。
func (s *WonderService) Get(ctx context.Context, allianceID int64) (*domain.Alliance, error) {
	a, err := s.alliances.Get(ctx, domain.AllianceID(allianceID))
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	if a == nil {
		return nil, ErrAllianceNotFound.WithData("alliance_id", allianceID)
	}
	return a, nil
}

// LevelCost 返回领取 level 级需要的三种资源进度。
func (s *WonderService) LevelCost(level int) map[string]int64 {
	base := s.tables.Wonder.BaseLevelCost
	factor := math.Pow(s.tables.Wonder.Growth, float64(level))
	return map[string]int64{
		domain.ResourceWood:   int64(float64(base.Wood) * factor),
		domain.ResourceStone:  int64(float64(base.Stone) * factor),
		domain.ResourceSilver: int64(float64(base.Silver) * factor),
	}
}

func (s *WonderService) loadAlliance(ctx context.Context, allianceID int64) (*domain.Alliance, error) {
	a, err := s.alliances.Get(ctx, domain.AllianceID(allianceID))
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	if a == nil {
		return nil, ErrAllianceNotFound.WithData("alliance_id", allianceID)
	}
	return a, nil
}

func (s *WonderService) loadOwnCity(ctx context.Context, playerID, cityID int64) (*citydomain.City, error) {
	c, err := s.cities.Get(ctx, citydomain.CityID(cityID))
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	if c == nil || int64(c.PlayerID) != playerID {
		return nil, ErrCityNotFound.WithData("city_id", cityID)
	}
	c.Reconcile(s.tables.Buildings, s.tables.Gods, s.clock.Now())
	return c, nil
}

func (s *WonderService) publish(allianceID int64) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(observer.Event{Collection: "alliance", DocID: strconv.FormatInt(allianceID, 10)})
}

func validResource(name string) bool {
	switch name {
	case domain.ResourceWood, domain.ResourceStone, domain.ResourceSilver:
		return true
	}
	return false
}

func subResource(c *citydomain.City, name string, amount int64) bool {
	switch name {
	case domain.ResourceWood:
		if c.Resources.Wood < amount {
			return false
		}
		c.Resources.Wood -= amount
	case domain.ResourceStone:
		if c.Resources.Stone < amount {
			return false
		}
		c.Resources.Stone -= amount
	case domain.ResourceSilver:
		if c.Resources.Silver < amount {
			return false
		}
		c.Resources.Silver -= amount
	default:
		return false
	}
	return true
}
