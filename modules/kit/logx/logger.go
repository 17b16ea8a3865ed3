package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是游戏各模块可复用的最小日志接口。
//
// 约束：
// - API 保持极简：结构化字段 + ctx 透传（trace id 等）
// - 不承载轮转/编码等实现细节，那些归 shared/logs
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}

// Nop 返回什么都不做的 Logger，测试与可选依赖场景使用。
func Nop() Logger {
	return NewZapLogger(nil)
}
