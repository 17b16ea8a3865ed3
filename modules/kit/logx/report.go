package logx

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

type errModel interface {
	Msg() string
	Reason() string
	Data() map[string]any
	Stack() []uintptr
	IsBiz() bool
}

// ErrorLog 把错误的码/语义/上下文/cause 链/发生处栈提取成便于打印的结构。
type ErrorLog struct {
	Error      string
	Msg        string
	Reason     string
	Data       map[string]any
	CauseChain []string
	Origin     string
	Stack      string
	Biz        bool
}

// BuildErrorLog 供接口层统一打印错误时使用。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error()}

	var em errModel
	if errors.As(err, &em) {
		out.Msg = em.Msg()
		out.Reason = em.Reason()
		out.Data = em.Data()
		out.Biz = em.IsBiz()
		out.Origin, out.Stack = formatStack(em.Stack(), 32)
	}
	out.CauseChain = causeChain(err, 20)
	return out
}

// ReportActionError 按错误类别选择日志级别：
// - 业务拒绝：INFO（玩家的正常失败路径，不告警）
// - 系统错误：ERROR，附 cause 链与发生处栈
func ReportActionError(ctx context.Context, l Logger, action string, err error, fields ...zap.Field) {
	if l == nil || err == nil {
		return
	}
	meta := BuildErrorLog(err)
	base := []zap.Field{zap.String("action", action)}
	if meta.Reason != "" {
		base = append(base, zap.String("reason", meta.Reason))
	}
	if len(meta.Data) != 0 {
		base = append(base, zap.Any("data", meta.Data))
	}
	base = append(base, fields...)

	withCtx := l.WithContext(ctx)
	if meta.Biz {
		withCtx.Info(fmt.Sprintf("%s rejected: %s", action, meta.Error), base...)
		return
	}
	if len(meta.CauseChain) != 0 {
		base = append(base, zap.Any("cause_chain", meta.CauseChain))
	}
	if meta.Origin != "" {
		base = append(base, zap.String("origin", meta.Origin), zap.String("err_stack", meta.Stack))
	}
	withCtx.Error(fmt.Sprintf("%s failed: %s", action, meta.Error), base...)
}

func causeChain(err error, maxDepth int) []string {
	if err == nil || maxDepth <= 0 {
		return nil
	}
	out := make([]string, 0, 4)
	cur := errors.Unwrap(err)
	for i := 0; i < maxDepth && cur != nil; i++ {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
		cur = errors.Unwrap(cur)
	}
	return out
}

func formatStack(pcs []uintptr, maxFrames int) (origin string, stack string) {
	if len(pcs) == 0 || maxFrames <= 0 {
		return "", ""
	}
	frames := runtime.CallersFrames(pcs)
	var b strings.Builder
	for i := 0; i < maxFrames; i++ {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" && f.Line == 0 {
			break
		}
		if origin == "" {
			origin = fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line)
		}
		fmt.Fprintf(&b, "%s\n\t%s:%d", f.Function, f.File, f.Line)
		if !more {
			break
		}
		b.WriteString("\n")
	}
	return origin, b.String()
}
