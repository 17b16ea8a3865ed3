package http

import (
	"context"
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"IslandKingdoms/internal/shared/transport"
	"IslandKingdoms/modules/kit/errx"
	"IslandKingdoms/modules/kit/logx"
)

// Response 是所有动作接口的统一响应壳。
// 业务拒绝统一 code=BizRejected，细分原因放 reason。
type Response struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, Response{Code: transport.OK, Data: data})
}

func Fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, Response{Code: code, Message: msg})
}

// Error 把应用层错误映射成响应：业务拒绝带原因码原样透出，
// 系统故障只给统一文案，细节留在日志里。
func Error(ctx context.Context, c *gin.Context, log logx.Logger, action string, err error) {
	logx.ReportActionError(ctx, log, action, err)

	var e *errx.Error
	if errors.As(err, &e) {
		if reason := e.Reason(); reason != "" {
			transport.SetErrorReason(ctx, reason)
		}
		if e.IsBiz() {
			c.JSON(nethttp.StatusOK, Response{
				Code:    transport.BizRejected,
				Reason:  string(e.Code()),
				Message: e.Msg(),
			})
			return
		}
		if errors.Is(e, errx.ErrReqParamERR) {
			Fail(c, transport.InvalidParam, "参数有误")
			return
		}
	}
	Fail(c, transport.SystemError, "系统繁忙，请稍后重试")
}
