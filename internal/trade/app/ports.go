package app

import (
	"context"

	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/trade/domain"
	"IslandKingdoms/modules/kit/logx"
)

type OfferRepo interface {
	// Get 不存在时返回 (nil, nil)；事务内读到的是事务视图。
	Get(ctx context.Context, id string) (*domain.Offer, error)
	Insert(ctx context.Context, o *domain.Offer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Offer, error)
}

type CityStore interface {
	Get(ctx context.Context, id citydomain.CityID) (*citydomain.City, error)
	Save(ctx context.Context, c *citydomain.City) error
}

type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// OfferIDGen 生成挂单 id（生产环境接 shortuuid）。
type OfferIDGen func() string

type Logger = logx.Logger
