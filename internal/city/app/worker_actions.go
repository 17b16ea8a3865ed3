package app

import (
	"context"

	"IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/economy"
)

// 每个城市最多保存的工人预设数。
const maxWorkerPresets = 3

// AssignWorker 往一座生产建筑增派一名工人。
// 每名工人占 20 人口、生产 +10%、幸福度 −5；工人位 = 每级位数 × 等级。
func (s *CityService) AssignWorker(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, buildingID string) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		b, ok := s.tables.Buildings.Get(buildingID)
		if !ok {
			return ErrUnknownID.WithData("building", buildingID)
		}
		st, built := c.Buildings[buildingID]
		if !built || st.Level < 1 {
			return ErrLevelZero.WithData("building", buildingID)
		}
		if st.Workers >= economy.WorkerSlotCap(b, st.Level) {
			return ErrWorkerSlotsFull.WithReason(ReasonWorkerSlotsFull)
		}
		if c.AvailablePopulation(s.tables.Buildings, s.tables.Units) < economy.WorkerPopulation {
			return ErrNotEnoughPopulation.WithReason(ReasonNotEnoughPopulation)
		}
		st.Workers++
		return nil
	})
}

// RemoveWorker 从一座建筑撤下一名工人，人口即刻释放。
func (s *CityService) RemoveWorker(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, buildingID string) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		st, ok := c.Buildings[buildingID]
		if !ok || st.Workers < 1 {
			return ErrNoWorker.WithData("building", buildingID)
		}
		st.Workers--
		return nil
	})
}

// SaveWorkerPreset 保存一套命名的工人分配方案。
// 同名覆盖；新名字超过 3 套拒绝。保存时校验建筑与工人位上限，
// 但不校验人口——人口在套用时按当时状态判定。
func (s *CityService) SaveWorkerPreset(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, name string, assignment map[string]int) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		if c.WorkerPresets == nil {
			c.WorkerPresets = make(map[string]map[string]int)
		}
		if _, exists := c.WorkerPresets[name]; !exists && len(c.WorkerPresets) >= maxWorkerPresets {
			return ErrPresetLimit.WithData("limit", maxWorkerPresets)
		}
		saved := make(map[string]int, len(assignment))
		for id, workers := range assignment {
			if workers < 0 {
				return ErrUnknownID.WithData("building", id).WithData("workers", workers)
			}
			if workers == 0 {
				continue
			}
			b, ok := s.tables.Buildings.Get(id)
			if !ok {
				return ErrUnknownID.WithData("building", id)
			}
			st := c.Buildings[id]
			level := 0
			if st != nil {
				level = st.Level
			}
			if workers > economy.WorkerSlotCap(b, level) {
				return ErrWorkerSlotsFull.WithReason(ReasonWorkerSlotsFull).WithData("building", id)
			}
			saved[id] = workers
		}
		c.WorkerPresets[name] = saved
		return nil
	})
}

// ApplyWorkerPreset 全量套用一套预设：预设外的建筑工人清零。
// 全有或全无——任何一座建筑的工人位或总人口放不下，整套拒绝，
// 当前分配保持不变。
func (s *CityService) ApplyWorkerPreset(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, name string) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		preset, ok := c.WorkerPresets[name]
		if !ok {
			return ErrPresetNotFound.WithData("preset", name)
		}

		var current, target int64
		for id, st := range c.Buildings {
			current += int64(st.Workers)
			if w, ok := preset[id]; ok {
				b, found := s.tables.Buildings.Get(id)
				if !found || w > economy.WorkerSlotCap(b, st.Level) {
					return ErrWorkerSlotsFull.WithReason(ReasonWorkerSlotsFull).WithData("building", id)
				}
				target += int64(w)
			}
		}
		for id := range preset {
			if _, built := c.Buildings[id]; !built {
				return ErrLevelZero.WithData("building", id)
			}
		}

		// 校验净人口变化：先全部撤下再重新分配的等价判定。
		netGrowth := (target - current) * economy.WorkerPopulation
		if netGrowth > 0 && c.AvailablePopulation(s.tables.Buildings, s.tables.Units) < netGrowth {
			return ErrNotEnoughPopulation.WithReason(ReasonNotEnoughPopulation)
		}

		for id, st := range c.Buildings {
			st.Workers = preset[id]
		}
		return nil
	})
}

// DeleteWorkerPreset 删除一套预设。
func (s *CityService) DeleteWorkerPreset(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, name string) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		if _, ok := c.WorkerPresets[name]; !ok {
			return ErrPresetNotFound.WithData("preset", name)
		}
		delete(c.WorkerPresets, name)
		return nil
	})
}
