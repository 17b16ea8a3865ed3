package app

import (
	"context"

	"IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/shared/gameconfig/building"
)

// UpgradeBuilding 把一次建筑升级排进建造队列。
//
// 前置条件全部对事务内快照校验：队列未满、未到顶级、前置建筑/科研
// 满足（按有效队列等级，排队中的也算）、资源与人口可负担
//（农场/仓库自己定义容量，跳过人口校验）。
func (s *CityService) UpgradeBuilding(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, buildingID string) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		b, ok := s.tables.Buildings.Get(buildingID)
		if !ok {
			return ErrUnknownID.WithData("building", buildingID)
		}
		q := c.Queue(domain.QueueBuild)
		if q.Len() >= domain.MaxQueueLength {
			return ErrQueueFull.WithReason(ReasonQueueFull)
		}

		target := c.EffectiveLevel(buildingID) + 1
		if target > b.MaxLevel {
			return ErrMaxLevel.WithData("building", buildingID)
		}
		if err := s.checkPrereqs(c, b.Requires); err != nil {
			return err
		}

		cost := economy.UpgradeCost(b, target)
		if !c.Resources.CoversAll(cost.Resources) {
			return ErrNotEnoughResource.WithReason(ReasonNotEnoughResource)
		}
		// 农场/仓库定义容量本身，不做人口校验。
		if buildingID != building.Farm && buildingID != building.Warehouse {
			if c.AvailablePopulation(s.tables.Buildings, s.tables.Units) < cost.Population {
				return ErrNotEnoughPopulation.WithReason(ReasonNotEnoughPopulation)
			}
		}

		c.Resources = c.Resources.Sub(cost.Resources)
		return q.Enqueue(domain.Task{
			ID:       s.nextID(),
			Kind:     domain.TaskUpgrade,
			TargetID: buildingID,
			Paid:     cost.Resources,
			Duration: s.duration(cost.TimeS),
		}, s.clock.Now())
	})
}

// DemolishBuilding 排一次拆除：消耗被拆等级升级成本的一半，时间同样减半。
func (s *CityService) DemolishBuilding(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, buildingID string) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		b, ok := s.tables.Buildings.Get(buildingID)
		if !ok {
			return ErrUnknownID.WithData("building", buildingID)
		}
		q := c.Queue(domain.QueueBuild)
		if q.Len() >= domain.MaxQueueLength {
			return ErrQueueFull.WithReason(ReasonQueueFull)
		}

		vacated := c.EffectiveLevel(buildingID)
		if vacated <= 0 {
			return ErrLevelZero.WithData("building", buildingID)
		}

		cost := economy.DemolishCost(b, vacated)
		if !c.Resources.CoversAll(cost.Resources) {
			return ErrNotEnoughResource.WithReason(ReasonNotEnoughResource)
		}
		c.Resources = c.Resources.Sub(cost.Resources)
		return q.Enqueue(domain.Task{
			ID:       s.nextID(),
			Kind:     domain.TaskDemolish,
			TargetID: buildingID,
			Paid:     cost.Resources,
			Duration: s.duration(cost.TimeS),
		}, s.clock.Now())
	})
}

// CancelQueueTask 取消队尾任务：FIFO 完成、LIFO 取消。
// 退还 50% 已付资源（向下取整、仓库容量封顶）；其余条目 EndTime 不变。
// 治疗任务取消时伤兵退回伤兵池。
func (s *CityService) CancelQueueTask(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, kind domain.QueueKind, taskID int64) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		removed, err := c.Queue(kind).CancelLast(taskID)
		if err != nil {
			switch err {
			case domain.ErrNotTailTask:
				return ErrNotTailTask.WithReason(ReasonNotTailTask)
			case domain.ErrTaskNotFound, domain.ErrQueueEmpty:
				return ErrTaskNotFound.WithData("task_id", taskID)
			default:
				return ErrInternalServer.WithCause(err)
			}
		}

		refund := removed.Paid.Scale(economy.CancelRefundRate)
		c.Resources = c.Resources.Add(refund).CapAt(c.WarehouseCap(s.tables.Buildings))

		if removed.Kind == domain.TaskHeal {
			c.Wounded[removed.TargetID] += removed.Amount
		}
		return nil
	})
}

// checkPrereqs 按有效队列等级检查前置：排队中的升级/科研计入满足。
func (s *CityService) checkPrereqs(c *domain.City, reqs []building.Requirement) error {
	for _, r := range reqs {
		if r.Building != "" && c.EffectiveLevel(r.Building) < r.Level {
			return ErrPrereqMissing.WithReason(ReasonPrereqMissing).
				WithData("building", r.Building).WithData("level", r.Level)
		}
		if r.Research != "" && !s.researchSatisfied(c, r.Research) {
			return ErrPrereqMissing.WithReason(ReasonPrereqMissing).
				WithData("research", r.Research)
		}
	}
	return nil
}

func (s *CityService) researchSatisfied(c *domain.City, researchID string) bool {
	if c.Research[researchID] {
		return true
	}
	for _, t := range c.Queue(domain.QueueResearch).Tasks() {
		if t.TargetID == researchID {
			return true
		}
	}
	return false
}
