package app

import (
	"context"
	"math"
	"strconv"
	"time"

	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/movement/domain"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
	"IslandKingdoms/internal/shared/gameconfig/unit"
	"IslandKingdoms/internal/shared/observer"
	"IslandKingdoms/internal/shared/utils"
	"IslandKingdoms/internal/travel"
	"IslandKingdoms/modules/kit/errx"
)

// 派遣后可直接撤销的宽限窗口。过期后只能折返。
const GraceWindow = 30 * time.Second

// 英雄单独赴任时的行军速度（与部队无关）。
const heroSpeed = 14.0

type Tables struct {
	Units     *unit.Table
	Buildings *building.Table
	Gods      *god.Table
}

// Target 是一次派遣的落点。
type Target struct {
	Kind   domain.TargetKind
	CityID int64
	Point  domain.Point
}

// DispatchService 承载全部行军派遣与生命周期操作。
// 每次派遣在一个事务内完成：对事务内快照校验、扣除单位/资源、落账行军。
type DispatchService struct {
	movements      MovementRepo
	reinforcements ReinforcementRepo
	cities         CityStore
	world          WorldInfo
	tx             TxRunner
	clock          utils.Clock
	nextID         IDGen
	log            Logger
	hub            *observer.Hub
	tables         Tables

	worldSpeed float64
	// 风速采样的随机源，重放/测试可注入确定性实现。
	rand01 func() float64
}

func NewDispatchService(
	movements MovementRepo,
	reinforcements ReinforcementRepo,
	cities CityStore,
	world WorldInfo,
	tx TxRunner,
	clock utils.Clock,
	nextID IDGen,
	log Logger,
	hub *observer.Hub,
	tables Tables,
	worldSpeed float64,
	rand01 func() float64,
) *DispatchService {
	if worldSpeed <= 0 {
		worldSpeed = travel.DefaultWorldSpeed
	}
	return &DispatchService{
		movements:      movements,
		reinforcements: reinforcements,
		cities:         cities,
		world:          world,
		tx:             tx,
		clock:          clock,
		nextID:         nextID,
		log:            log,
		hub:            hub,
		tables:         tables,
		worldSpeed:     worldSpeed,
		rand01:         rand01,
	}
}

// Attack 派出一支攻击部队。村庄目标要求同岛；遗迹/神城一律按跨岛处理。
func (s *DispatchService) Attack(ctx context.Context, playerID, originCityID int64, target Target, units map[string]int64, formation *domain.Formation) (*domain.Movement, error) {
	typ := domain.TypeAttack
	switch target.Kind {
	case domain.TargetVillage:
		typ = domain.TypeAttackVillage
	case domain.TargetRuin:
		typ = domain.TypeAttackRuin
	case domain.TargetGodTown:
		typ = domain.TypeAttackGodTown
	}
	return s.dispatch(ctx, playerID, originCityID, dispatchOrder{
		typ:       typ,
		mode:      travel.ModeAttack,
		target:    target,
		units:     units,
		formation: formation,
	})
}

// Reinforce 派驻防部队去另一座城。到达后由解算器记入目标城的驻防台账。
func (s *DispatchService) Reinforce(ctx context.Context, playerID, originCityID int64, target Target, units map[string]int64) (*domain.Movement, error) {
	return s.dispatch(ctx, playerID, originCityID, dispatchOrder{
		typ:    domain.TypeReinforce,
		mode:   travel.ModeReinforce,
		target: target,
		units:  units,
	})
}

// Scout 派出侦察。资金取自洞穴白银池——与城市白银严格分离。
func (s *DispatchService) Scout(ctx context.Context, playerID, originCityID int64, target Target, silver int64) (*domain.Movement, error) {
	if silver < 1 {
		return nil, errx.ErrReqParamERR.WithData("silver", silver)
	}
	return s.dispatch(ctx, playerID, originCityID, dispatchOrder{
		typ:        domain.TypeScout,
		mode:       travel.ModeScout,
		target:     target,
		caveSilver: silver,
	})
}

// SendResources 派一趟运输（贸易路线），单次总量受市场容量约束。
func (s *DispatchService) SendResources(ctx context.Context, playerID, originCityID int64, target Target, res economy.Resources) (*domain.Movement, error) {
	if res.Wood < 0 || res.Stone < 0 || res.Silver < 0 || res == (economy.Resources{}) {
		return nil, errx.ErrReqParamERR.WithData("resources", res)
	}
	return s.dispatch(ctx, playerID, originCityID, dispatchOrder{
		typ:       domain.TypeTrade,
		mode:      travel.ModeTrade,
		target:    target,
		resources: res,
	})
}

// FoundCity 派出殖民队去一个空置城位。
// 至少带一名移民；移民越多到达后的建城时间越短（线性，下限 1 小时）。
func (s *DispatchService) FoundCity(ctx context.Context, playerID, originCityID int64, target Target, units map[string]int64) (*domain.Movement, error) {
	villagers := units[unit.Villager]
	if villagers < 1 {
		return nil, ErrNeedsVillager
	}
	return s.dispatch(ctx, playerID, originCityID, dispatchOrder{
		typ:      domain.TypeFoundCity,
		mode:     travel.ModeFoundCity,
		target:   target,
		units:    units,
		founding: travel.FoundingTime(villagers),
	})
}

// AssignHero 把驻城英雄派去另一座城赴任。英雄离城即置为在途，
// 在途期间不能再次派出；宽限窗口内撤销会把英雄放回出发城。
func (s *DispatchService) AssignHero(ctx context.Context, playerID, originCityID int64, target Target, heroID string) (*domain.Movement, error) {
	if heroID == "" {
		return nil, errx.ErrReqParamERR.WithData("hero_id", heroID)
	}
	return s.dispatch(ctx, playerID, originCityID, dispatchOrder{
		typ:    domain.TypeAssignHero,
		mode:   travel.ModeReinforce,
		target: target,
		heroID: heroID,
	})
}

func (s *DispatchService) List(ctx context.Context, playerID int64) ([]*domain.Movement, error) {
	ms, err := s.movements.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	return ms, nil
}

type dispatchOrder struct {
	typ        domain.Type
	mode       travel.Mode
	target     Target
	units      map[string]int64
	resources  economy.Resources
	caveSilver int64
	heroID     string
	formation  *domain.Formation
	founding   time.Duration
}

// rosterProfile 概括出征名单：速度短板、类别构成、需要运力的陆军人口与运力总量。
type rosterProfile struct {
	roster    travel.Roster
	slowest   float64
	landPop   int64
	transport int64
}

func (s *DispatchService) profile(units map[string]int64) (rosterProfile, error) {
	if len(units) == 0 {
		return rosterProfile{}, ErrEmptyRoster
	}
	p := rosterProfile{slowest: math.MaxFloat64}
	for id, count := range units {
		if count < 1 {
			return rosterProfile{}, errx.ErrReqParamERR.WithData("unit", id).WithData("count", count)
		}
		u, ok := s.tables.Units.Get(id)
		if !ok {
			return rosterProfile{}, ErrUnknownUnit.WithData("unit", id)
		}
		if u.Speed < p.slowest {
			p.slowest = u.Speed
		}
		switch {
		case u.Flying:
			// 飞行单位自行跨岛，不需要也不提供运力。
			p.roster.HasFlying = true
		case u.Kind == unit.KindNaval:
			p.roster.HasNaval = true
			p.transport += u.TransportCap * count
		default:
			p.roster.HasLand = true
			p.landPop += u.Population * count
		}
	}
	return p, nil
}

// crossIslandFor 应用目标类别的岛屿邻接规则。
func crossIslandFor(kind domain.TargetKind, origin, target domain.Point) (bool, error) {
	switch kind {
	case domain.TargetVillage:
		if origin.IslandID != target.IslandID {
			return false, ErrSameIslandOnly.WithData("target_island", target.IslandID)
		}
		return false, nil
	case domain.TargetRuin, domain.TargetGodTown:
		return true, nil
	default:
		return origin.IslandID != target.IslandID, nil
	}
}

func checkFormation(f *domain.Formation, units map[string]int64, ut *unit.Table) error {
	for _, id := range f.Lines() {
		u, ok := ut.Get(id)
		if !ok || u.Kind != unit.KindLand || units[id] < 1 {
			return ErrBadFormation.WithData("unit", id)
		}
	}
	return nil
}

func (s *DispatchService) dispatch(ctx context.Context, playerID, originCityID int64, order dispatchOrder) (*domain.Movement, error) {
	cond, err := s.world.Conditions(ctx)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	var created *domain.Movement
	err = s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		c, err := s.cities.Get(ctx, citydomain.CityID(originCityID))
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if c == nil || int64(c.PlayerID) != playerID {
			return ErrOriginNotFound.WithData("city_id", originCityID)
		}
		now := s.clock.Now()
		c.Reconcile(s.tables.Buildings, s.tables.Gods, now)

		origin := domain.Point{IslandID: c.IslandID, X: c.X, Y: c.Y}
		cross, err := crossIslandFor(order.target.Kind, origin, order.target.Point)
		if err != nil {
			return err
		}
		dist := travel.Distance(origin.X, origin.Y, order.target.Point.X, order.target.Point.Y)

		var dur time.Duration
		if order.mode == travel.ModeScout || order.mode == travel.ModeTrade {
			// 快速通道与部队构成无关，不会失败。
			dur, _ = travel.TravelTime(dist, 0, order.mode, cond, travel.Roster{}, 0, s.worldSpeed)
		} else if order.typ == domain.TypeAssignHero {
			wind := travel.SampleWind(cond.Weather, s.rand01)
			dur, err = travel.TravelTime(dist, heroSpeed, order.mode, cond, travel.Roster{HasLand: true}, wind, s.worldSpeed)
			if err != nil {
				return ErrNeverArrives.WithData("mode", string(order.mode))
			}
		} else {
			prof, err := s.profile(order.units)
			if err != nil {
				return err
			}
			if cross && prof.landPop > 0 && prof.transport < prof.landPop {
				return ErrNoTransport.
					WithData("need", prof.landPop).
					WithData("capacity", prof.transport).
					WithData("shortfall", prof.landPop-prof.transport)
			}
			if order.formation != nil {
				if err := checkFormation(order.formation, order.units, s.tables.Units); err != nil {
					return err
				}
			}
			wind := travel.SampleWind(cond.Weather, s.rand01)
			dur, err = travel.TravelTime(dist, prof.slowest, order.mode, cond, prof.roster, wind, s.worldSpeed)
			if err != nil {
				return ErrNeverArrives.WithData("mode", string(order.mode))
			}
		}

		if order.mode == travel.ModeTrade {
			total := order.resources.Wood + order.resources.Stone + order.resources.Silver
			if capLimit := economy.MarketCapacity(s.tables.Buildings, c.Level(building.Market)); total > capLimit {
				return ErrMarketCapacity.WithData("total", total).WithData("capacity", capLimit)
			}
		}

		for id, count := range order.units {
			if c.Units[id] < count {
				return ErrNotEnoughUnits.WithData("unit", id).WithData("have", c.Units[id])
			}
		}
		for id, count := range order.units {
			c.Units[id] -= count
			if c.Units[id] == 0 {
				delete(c.Units, id)
			}
		}
		if order.resources != (economy.Resources{}) {
			if !c.Resources.CoversAll(order.resources) {
				return ErrNotEnoughResource
			}
			c.Resources = c.Resources.Sub(order.resources)
		}
		if order.caveSilver > 0 {
			if c.CaveSilver < order.caveSilver {
				return ErrNotEnoughSilver.WithData("have", c.CaveSilver)
			}
			c.CaveSilver -= order.caveSilver
		}
		if order.heroID != "" {
			if c.HeroID != order.heroID {
				return ErrNoHero.WithData("hero_id", order.heroID)
			}
			if c.HeroAway {
				return ErrHeroAway
			}
			c.HeroAway = true
		}

		m := &domain.Movement{
			ID:               s.nextID(),
			PlayerID:         playerID,
			Type:             order.typ,
			Status:           domain.StatusMoving,
			OriginCityID:     originCityID,
			Origin:           origin,
			TargetKind:       order.target.Kind,
			TargetCityID:     order.target.CityID,
			Target:           order.target.Point,
			Units:            order.units,
			Resources:        order.resources,
			CaveSilver:       order.caveSilver,
			HeroID:           order.heroID,
			Formation:        order.formation,
			DepartureTime:    now,
			ArrivalTime:      now.Add(dur),
			CancellableUntil: now.Add(GraceWindow),
			FoundingDuration: order.founding,
		}
		if err := s.movements.Insert(ctx, m); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.cities.Save(ctx, c); err != nil {
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

func (s *DispatchService) publish(movementID int64) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(observer.Event{Collection: "movement", DocID: strconv.FormatInt(movementID, 10)})
}
