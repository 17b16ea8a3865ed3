package app

import (
	"context"

	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/movement/domain"
	"IslandKingdoms/internal/travel"
)

// Recall 在宽限窗口内撤销派遣：单位/资源原子退回出发城，行军记录删除。
// 过期后此路不通，调用方应改用 TurnAround。
func (s *DispatchService) Recall(ctx context.Context, playerID, movementID int64) error {
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		m, err := s.movements.Get(ctx, movementID)
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if m == nil {
			return ErrMovementNotFound.WithData("movement_id", movementID)
		}
		if m.PlayerID != playerID {
			return ErrNotOwner
		}
		now := s.clock.Now()
		if !m.Recallable(now) {
			if m.Status == domain.StatusReturning {
				return ErrAlreadyReturning
			}
			return ErrGraceExpired.WithData("cancellable_until", m.CancellableUntil)
		}

		c, err := s.cities.Get(ctx, citydomain.CityID(m.OriginCityID))
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if c == nil {
			return ErrOriginNotFound.WithData("city_id", m.OriginCityID)
		}
		c.Reconcile(s.tables.Buildings, s.tables.Gods, now)

		for id, count := range m.Units {
			c.Units[id] += count
		}
		c.Resources = c.Resources.Add(m.Resources).CapAt(c.WarehouseCap(s.tables.Buildings))
		c.CaveSilver += m.CaveSilver
		if m.HeroID != "" {
			c.HeroAway = false
		}

		if err := s.cities.Save(ctx, c); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.movements.Delete(ctx, m.ID); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(movementID)
	return nil
}

// TurnAround 让在途行军原路折返：回程耗时 = 已经走过的时间。
// 不退派遣成本，不重新按距离计算。
func (s *DispatchService) TurnAround(ctx context.Context, playerID, movementID int64) error {
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		m, err := s.movements.Get(ctx, movementID)
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if m == nil {
			return ErrMovementNotFound.WithData("movement_id", movementID)
		}
		if m.PlayerID != playerID {
			return ErrNotOwner
		}
		now := s.clock.Now()
		if m.Status == domain.StatusReturning {
			return ErrAlreadyReturning
		}
		if !m.TurnAround(now) {
			return ErrAlreadyArrived.WithData("arrival_time", m.ArrivalTime)
		}
		if err := s.movements.Update(ctx, m); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(movementID)
	return nil
}

// WithdrawReinforcements 从目标城的驻防台账撤回请求方自己的条目，
// 并为撤回的部队开一条返程行军。只能动自己名下的条目。
func (s *DispatchService) WithdrawReinforcements(ctx context.Context, playerID, targetCityID, originCityID int64) (*domain.Movement, error) {
	cond, err := s.world.Conditions(ctx)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	var created *domain.Movement
	err = s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		ledger, err := s.reinforcements.Get(ctx, targetCityID)
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if ledger == nil {
			return ErrNoReinforcements.WithData("target_city_id", targetCityID)
		}
		entry, ok := ledger.WithdrawOwn(playerID, originCityID)
		if !ok {
			return ErrNoReinforcements.WithData("origin_city_id", originCityID)
		}

		origin, err := s.cities.Get(ctx, citydomain.CityID(originCityID))
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		target, err := s.cities.Get(ctx, citydomain.CityID(targetCityID))
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if origin == nil || target == nil {
			return ErrOriginNotFound
		}

		prof, err := s.profile(entry.Units)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		dist := travel.Distance(target.X, target.Y, origin.X, origin.Y)
		wind := travel.SampleWind(cond.Weather, s.rand01)
		dur, err := travel.TravelTime(dist, prof.slowest, travel.ModeReturn, cond, prof.roster, wind, s.worldSpeed)
		if err != nil {
			return ErrNeverArrives
		}

		m := &domain.Movement{
			ID:            s.nextID(),
			PlayerID:      playerID,
			Type:          domain.TypeReturn,
			Status:        domain.StatusReturning,
			OriginCityID:  targetCityID,
			Origin:        domain.Point{IslandID: target.IslandID, X: target.X, Y: target.Y},
			TargetKind:    domain.TargetCity,
			TargetCityID:  originCityID,
			Target:        domain.Point{IslandID: origin.IslandID, X: origin.X, Y: origin.Y},
			Units:         entry.Units,
			DepartureTime: now,
			ArrivalTime:   now.Add(dur),
			// 撤回的返程不再给宽限窗口。
			CancellableUntil: now,
		}
		if err := s.movements.Insert(ctx, m); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.reinforcements.Save(ctx, ledger); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(created.ID)
	return created, nil
}
