package app

import (
	"context"

	"IslandKingdoms/internal/city/domain"
	"IslandKingdoms/modules/kit/logx"
)

// CityRepo 是城市文档的最小读写接口。
// Get 在事务内调用时必须返回事务视图内的权威状态。
type CityRepo interface {
	Get(ctx context.Context, id domain.CityID) (*domain.City, error)
	Save(ctx context.Context, c *domain.City) error
}

// TxRunner 把回调放进一次原子事务。回调内的读写要么全部生效要么全部回滚。
type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// IDGen 生成任务/实体 id（生产环境接 snowflake）。
type IDGen func() int64

type Logger = logx.Logger
