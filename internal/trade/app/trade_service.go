package app

import (
	"context"

	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
	"IslandKingdoms/internal/shared/observer"
	"IslandKingdoms/internal/shared/utils"
	"IslandKingdoms/internal/trade/domain"
	"IslandKingdoms/modules/kit/errx"
)

type Tables struct {
	Buildings *building.Table
	Gods      *god.Table
}

// TradeService 承载交易所挂单的全生命周期。
// 接受挂单是本模块唯一的跨玩家原子操作：同一事务里清算双方并删单，
// 并发抢单只有一个能成功。
type TradeService struct {
	offers OfferRepo
	cities CityStore
	tx     TxRunner
	clock  utils.Clock
	nextID OfferIDGen
	log    Logger
	hub    *observer.Hub
	tables Tables
}

func NewTradeService(offers OfferRepo, cities CityStore, tx TxRunner, clock utils.Clock, nextID OfferIDGen, log Logger, hub *observer.Hub, tables Tables) *TradeService {
	return &TradeService{
		offers: offers,
		cities: cities,
		tx:     tx,
		clock:  clock,
		nextID: nextID,
		log:    log,
		hub:    hub,
		tables: tables,
	}
}

// CreateOffer 挂一张单：供给侧资源立刻从挂单城锁出。
func (s *TradeService) CreateOffer(ctx context.Context, playerID, originCityID int64, offer, demand domain.Stake) (*domain.Offer, error) {
	if !domain.ValidResource(offer.Resource) || !domain.ValidResource(demand.Resource) ||
		offer.Amount < 1 || demand.Amount < 1 {
		return nil, errx.ErrReqParamERR.WithData("offer", offer).WithData("demand", demand)
	}

	var created *domain.Offer
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		c, err := s.loadOwnCity(ctx, playerID, originCityID)
		if err != nil {
			return err
		}
		if !subResource(&c.Resources, offer.Resource, offer.Amount) {
			return ErrNotEnoughResource.WithData("resource", offer.Resource)
		}

		o := &domain.Offer{
			ID:           s.nextID(),
			PlayerID:     playerID,
			OriginCityID: originCityID,
			Offer:        offer,
			Demand:       demand,
			CreatedAt:    s.clock.Now(),
		}
		if err := s.offers.Insert(ctx, o); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.cities.Save(ctx, c); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(created.ID)
	return created, nil
}

// AcceptOffer 接单：接受方付出需求侧资源、收下供给侧资源，
// 挂单方的城同时收到需求侧资源，挂单删除——全部在一个事务内。
// 单据在事务内重读，已被别人抢走时返回"挂单已不存在"。
func (s *TradeService) AcceptOffer(ctx context.Context, playerID, acceptorCityID int64, offerID string) error {
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		o, err := s.offers.Get(ctx, offerID)
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if o == nil {
			return ErrOfferNotFound.WithData("offer_id", offerID)
		}
		if o.PlayerID == playerID {
			return ErrOwnOffer
		}

		acceptor, err := s.loadOwnCity(ctx, playerID, acceptorCityID)
		if err != nil {
			return err
		}
		creator, err := s.cities.Get(ctx, citydomain.CityID(o.OriginCityID))
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if creator == nil {
			// 挂单城没了（被灭城等），按单据失效处理。
			return ErrOfferNotFound.WithData("offer_id", offerID)
		}
		creator.Reconcile(s.tables.Buildings, s.tables.Gods, s.clock.Now())

		if !subResource(&acceptor.Resources, o.Demand.Resource, o.Demand.Amount) {
			return ErrNotEnoughResource.WithData("resource", o.Demand.Resource)
		}
		addResource(&acceptor.Resources, o.Offer.Resource, o.Offer.Amount)
		acceptor.Resources = acceptor.Resources.CapAt(acceptor.WarehouseCap(s.tables.Buildings))

		addResource(&creator.Resources, o.Demand.Resource, o.Demand.Amount)
		creator.Resources = creator.Resources.CapAt(creator.WarehouseCap(s.tables.Buildings))

		if err := s.offers.Delete(ctx, o.ID); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.cities.Save(ctx, acceptor); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.cities.Save(ctx, creator); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(offerID)
	return nil
}

// CancelOffer 撤单：锁出的资源退回挂单城（仓库封顶），单据删除。
func (s *TradeService) CancelOffer(ctx context.Context, playerID int64, offerID string) error {
	err := s.tx.RunTransaction(ctx, func(ctx context.Context) error {
		o, err := s.offers.Get(ctx, offerID)
		if err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if o == nil {
			return ErrOfferNotFound.WithData("offer_id", offerID)
		}
		if o.PlayerID != playerID {
			return ErrNotOfferOwner
		}

		c, err := s.loadOwnCity(ctx, playerID, o.OriginCityID)
		if err != nil {
			return err
		}
		addResource(&c.Resources, o.Offer.Resource, o.Offer.Amount)
		c.Resources = c.Resources.CapAt(c.WarehouseCap(s.tables.Buildings))

		if err := s.offers.Delete(ctx, o.ID); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		if err := s.cities.Save(ctx, c); err != nil {
			return ErrUnavailable.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(offerID)
	return nil
}

// List 返回交易所当前全部挂单。
func (s *TradeService) List(ctx context.Context) ([]*domain.Offer, error) {
	offers, err := s.offers.List(ctx)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	return offers, nil
}

func (s *TradeService) loadOwnCity(ctx context.Context, playerID, cityID int64) (*citydomain.City, error) {
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

func (s *TradeService) publish(offerID string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(observer.Event{Collection: "trade_offer", DocID: offerID})
}

func subResource(r *economy.Resources, name string, amount int64) bool {
	switch name {
	case domain.ResourceWood:
		if r.Wood < amount {
			return false
		}
		r.Wood -= amount
	case domain.ResourceStone:
		if r.Stone < amount {
			return false
		}
		r.Stone -= amount
	case domain.ResourceSilver:
		if r.Silver < amount {
			return false
		}
		r.Silver -= amount
	default:
		return false
	}
	return true
}

func addResource(r *economy.Resources, name string, amount int64) {
	switch name {
	case domain.ResourceWood:
		r.Wood += amount
	case domain.ResourceStone:
		r.Stone += amount
	case domain.ResourceSilver:
		r.Silver += amount
	}
}
