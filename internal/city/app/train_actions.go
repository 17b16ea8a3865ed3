package app

import (
	"context"

	"IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/unit"
	"IslandKingdoms/modules/kit/errx"
)

// trainingSite 返回兵种对应的训练建筑与训练队列。
// land → 兵营，naval → 船坞，mythic → 神庙。
func trainingSite(kind string) (string, domain.QueueKind, bool) {
	switch kind {
	case unit.KindLand:
		return building.Barracks, domain.QueueBarracks, true
	case unit.KindNaval:
		return building.Shipyard, domain.QueueShipyard, true
	case unit.KindMythic:
		return building.DivineTemple, domain.QueueTemple, true
	default:
		return "", "", false
	}
}

// TrainUnits 把一批兵的训练排进对应建筑的队列。
// 成本与时长按数量线性放大，人口在排队时即占用。
// mythic 兵种要求当前信奉其归属的神，并消耗该神的信仰值。
func (s *CityService) TrainUnits(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, unitID string, amount int64) error {
	if amount < 1 {
		return errx.ErrReqParamERR.WithData("amount", amount)
	}
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		u, ok := s.tables.Units.Get(unitID)
		if !ok {
			return ErrUnknownID.WithData("unit", unitID)
		}
		site, queueKind, ok := trainingSite(u.Kind)
		if !ok {
			// 数值表在加载时校验过 kind，到这里属于契约违背。
			return ErrInternalServer.WithData("unit_kind", u.Kind)
		}
		if c.Level(site) < 1 {
			return ErrWrongBuilding.WithData("building", site)
		}
		q := c.Queue(queueKind)
		if q.Len() >= domain.MaxQueueLength {
			return ErrQueueFull.WithReason(ReasonQueueFull)
		}

		cost := economy.TrainCost(u, amount)
		if !c.Resources.CoversAll(cost.Resources) {
			return ErrNotEnoughResource.WithReason(ReasonNotEnoughResource)
		}
		if c.AvailablePopulation(s.tables.Buildings, s.tables.Units) < cost.Population {
			return ErrNotEnoughPopulation.WithReason(ReasonNotEnoughPopulation)
		}
		if u.Kind == unit.KindMythic {
			if c.WorshippedGod != u.God {
				return ErrWrongGod.WithData("god", u.God)
			}
			if c.Favor[u.God] < cost.Favor {
				return ErrNotEnoughFavor.WithData("need", cost.Favor)
			}
			c.Favor[u.God] -= cost.Favor
		}

		c.Resources = c.Resources.Sub(cost.Resources)
		return q.Enqueue(domain.Task{
			ID:       s.nextID(),
			Kind:     domain.TaskTrain,
			TargetID: unitID,
			Amount:   amount,
			Paid:     cost.Resources,
			Duration: s.duration(cost.TimeS),
		}, s.clock.Now())
	})
}

// HealUnits 从伤兵池排一批治疗：资源减半、时间减半、人口全额占用。
// 伤兵在排队时即从池中扣除，防止并发重复取用；取消时退回池。
func (s *CityService) HealUnits(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, unitID string, amount int64) error {
	if amount < 1 {
		return errx.ErrReqParamERR.WithData("amount", amount)
	}
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		u, ok := s.tables.Units.Get(unitID)
		if !ok {
			return ErrUnknownID.WithData("unit", unitID)
		}
		if c.Level(building.Hospital) < 1 {
			return ErrWrongBuilding.WithData("building", building.Hospital)
		}
		if c.Wounded[unitID] < amount {
			return ErrNoWounded.WithData("unit", unitID).WithData("wounded", c.Wounded[unitID])
		}
		q := c.Queue(domain.QueueHeal)
		if q.Len() >= domain.MaxQueueLength {
			return ErrQueueFull.WithReason(ReasonQueueFull)
		}
		// 医馆容量限制同时在治的总兵数，含已排队的批次。
		capacity := economy.HospitalCapacity(s.tables.Buildings, c.Level(building.Hospital))
		if q.QueuedAmount(domain.TaskHeal)+amount > capacity {
			return ErrHospitalFull.WithData("capacity", capacity)
		}

		cost := economy.HealCost(u, amount)
		if !c.Resources.CoversAll(cost.Resources) {
			return ErrNotEnoughResource.WithReason(ReasonNotEnoughResource)
		}
		if c.AvailablePopulation(s.tables.Buildings, s.tables.Units) < cost.Population {
			return ErrNotEnoughPopulation.WithReason(ReasonNotEnoughPopulation)
		}

		c.Wounded[unitID] -= amount
		c.Resources = c.Resources.Sub(cost.Resources)
		return q.Enqueue(domain.Task{
			ID:       s.nextID(),
			Kind:     domain.TaskHeal,
			TargetID: unitID,
			Amount:   amount,
			Paid:     cost.Resources,
			Duration: s.duration(cost.TimeS),
		}, s.clock.Now())
	})
}
