package app

import (
	"context"

	citydomain "IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/world/domain"
	"IslandKingdoms/modules/kit/logx"
)

type SlotRepo interface {
	// Get 不存在时返回 (nil, nil)；事务内读到的是事务视图。
	Get(ctx context.Context, id int64) (*domain.Slot, error)
	Save(ctx context.Context, s *domain.Slot) error
	// ListEmpty 返回一批候选空位（快照，可能在落地前被别人抢走）。
	ListEmpty(ctx context.Context, limit int) ([]*domain.Slot, error)
	CountEmpty(ctx context.Context) (int64, error)
}

type WorldRepo interface {
	Get(ctx context.Context, id int64) (*domain.World, error)
	Save(ctx context.Context, w *domain.World) error
}

type CityStore interface {
	Get(ctx context.Context, id citydomain.CityID) (*citydomain.City, error)
	Save(ctx context.Context, c *citydomain.City) error
}

type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type IDGen func() int64

type Logger = logx.Logger
