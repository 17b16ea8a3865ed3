package app

import (
	"context"

	"IslandKingdoms/internal/alliance/domain"
	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/modules/kit/logx"
)

type AllianceRepo interface {
	// Get 不存在时返回 (nil, nil)。
	Get(ctx context.Context, id domain.AllianceID) (*domain.Alliance, error)
	Save(ctx context.Context, a *domain.Alliance) error
}

type CityStore interface {
	Get(ctx context.Context, id citydomain.CityID) (*citydomain.City, error)
	Save(ctx context.Context, c *citydomain.City) error
}

type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger = logx.Logger
