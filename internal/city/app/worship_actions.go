package app

import (
	"context"
	"time"

	"IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
)

// Worship 切换城市信奉的神。
// 信仰按神分账：切换不清空任何一个神已累积的信仰，只改变后续累积流向。
func (s *CityService) Worship(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, godID string) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		if _, ok := s.tables.Gods.God(godID); !ok {
			return ErrUnknownID.WithData("god", godID)
		}
		if c.Level(building.Temple) < 1 {
			return ErrWrongBuilding.WithData("building", building.Temple)
		}
		// withCity 已按旧信奉对象补算到 now，这里切换即可。
		c.WorshippedGod = godID
		return nil
	})
}

// CastSpell 消耗当前信奉之神的信仰值施放法术，效果立即生效。
//
// 法术效果是 tagged union：出现处理集合之外的 type 必须响亮失败，
// 静默 no-op 会把数值表错误变成玩家白白损失信仰。
func (s *CityService) CastSpell(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, spellID, targetBuilding string) error {
	return s.withCity(ctx, cityID, playerID, func(c *domain.City) error {
		sp, ok := s.tables.Gods.Spell(spellID)
		if !ok {
			return ErrUnknownID.WithData("spell", spellID)
		}
		if c.WorshippedGod != sp.God {
			return ErrWrongGod.WithData("god", sp.God)
		}
		if c.Favor[sp.God] < sp.FavorCost {
			return ErrNotEnoughFavor.WithData("need", sp.FavorCost)
		}

		if err := s.applySpell(c, sp, targetBuilding); err != nil {
			return err
		}
		c.Favor[sp.God] -= sp.FavorCost
		return nil
	})
}

func (s *CityService) applySpell(c *domain.City, sp *god.Spell, targetBuilding string) error {
	eff := sp.Effect
	switch eff.Type {
	case god.EffectAddResources:
		gain := economy.Resources{}
		switch eff.Resource {
		case "wood":
			gain.Wood = eff.Amount
		case "stone":
			gain.Stone = eff.Amount
		case "silver":
			gain.Silver = eff.Amount
		default:
			return ErrUnknownSpellEffect.WithData("resource", eff.Resource)
		}
		c.Resources = c.Resources.Add(gain).CapAt(c.WarehouseCap(s.tables.Buildings))
	case god.EffectAddMultipleResources:
		gain := economy.Resources{
			Wood:   eff.Resources["wood"],
			Stone:  eff.Resources["stone"],
			Silver: eff.Resources["silver"],
		}
		c.Resources = c.Resources.Add(gain).CapAt(c.WarehouseCap(s.tables.Buildings))
	case god.EffectDamageBuilding:
		target := eff.Building
		if target == "" {
			target = targetBuilding
		}
		st, ok := c.Buildings[target]
		if !ok || st.Level < 1 {
			return ErrLevelZero.WithData("building", target)
		}
		st.Level -= eff.Levels
		if st.Level < 0 {
			st.Level = 0
		}
	case god.EffectBoostProduction:
		// 不叠加：重复施放刷新窗口。
		c.BoostPercent = eff.Percent
		c.BoostUntil = s.clock.Now().Add(time.Duration(eff.DurationS) * time.Second)
	default:
		return ErrUnknownSpellEffect.WithData("effect_type", eff.Type)
	}
	return nil
}
