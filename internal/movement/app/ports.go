package app

import (
	"context"

	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/movement/domain"
	"IslandKingdoms/internal/travel"
	"IslandKingdoms/modules/kit/logx"
)

type MovementRepo interface {
	Get(ctx context.Context, id int64) (*domain.Movement, error)
	Insert(ctx context.Context, m *domain.Movement) error
	Update(ctx context.Context, m *domain.Movement) error
	Delete(ctx context.Context, id int64) error
	ListByPlayer(ctx context.Context, playerID int64) ([]*domain.Movement, error)
}

type ReinforcementRepo interface {
	// Get 不存在时返回 (nil, nil)。
	Get(ctx context.Context, targetCityID int64) (*domain.ReinforcementLedger, error)
	Save(ctx context.Context, l *domain.ReinforcementLedger) error
}

// CityStore 是行军模块对城市聚合的最小依赖，
// 由 city 模块的 mongodb 仓库直接满足。
type CityStore interface {
	Get(ctx context.Context, id citydomain.CityID) (*citydomain.City, error)
	Save(ctx context.Context, c *citydomain.City) error
}

// WorldInfo 提供行军计算需要的世界状态。
type WorldInfo interface {
	Conditions(ctx context.Context) (travel.Conditions, error)
}

type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type IDGen func() int64

type Logger = logx.Logger
