package app

import (
	"context"

	"IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/shared/gameconfig/building"
)

// StartResearch 把一项科研排进学院队列。
//
// 研究点由学院等级提供（每级 4 点），在排队时即消耗且不返还；
// 取消只退 50% 资源。已研究或已在队列中的科研拒绝重复排队。
func (s *CityService) StartResearch(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, researchID string) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		r, ok := s.tables.Research.Get(researchID)
		if !ok {
			return ErrUnknownID.WithData("research", researchID)
		}
		if c.Level(building.Academy) < 1 {
			return ErrWrongBuilding.WithData("building", building.Academy)
		}
		if s.researchSatisfied(c, researchID) {
			return ErrAlreadyResearched.WithData("research", researchID)
		}
		q := c.Queue(domain.QueueResearch)
		if q.Len() >= domain.MaxQueueLength {
			return ErrQueueFull.WithReason(ReasonQueueFull)
		}
		for _, req := range r.Requires {
			if req.Building != "" && c.EffectiveLevel(req.Building) < req.Level {
				return ErrPrereqMissing.WithReason(ReasonPrereqMissing).
					WithData("building", req.Building).WithData("level", req.Level)
			}
			if req.Research != "" && !s.researchSatisfied(c, req.Research) {
				return ErrPrereqMissing.WithReason(ReasonPrereqMissing).
					WithData("research", req.Research)
			}
		}

		available := economy.ResearchPoints(c.Level(building.Academy)) - c.ResearchPointsSpent
		if available < r.Cost.Points {
			return ErrNotEnoughPoints.WithData("need", r.Cost.Points).WithData("available", available)
		}
		paid := economy.Resources{Wood: r.Cost.Wood, Stone: r.Cost.Stone, Silver: r.Cost.Silver}
		if !c.Resources.CoversAll(paid) {
			return ErrNotEnoughResource.WithReason(ReasonNotEnoughResource)
		}

		c.Resources = c.Resources.Sub(paid)
		c.ResearchPointsSpent += r.Cost.Points
		return q.Enqueue(domain.Task{
			ID:       s.nextID(),
			Kind:     domain.TaskResearch,
			TargetID: researchID,
			Paid:     paid,
			Duration: s.duration(r.TimeS),
		}, s.clock.Now())
	})
}
