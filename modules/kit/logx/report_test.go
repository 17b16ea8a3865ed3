package logx

import (
	"errors"
	"testing"

	"IslandKingdoms/modules/kit/errx"
)

func TestBuildErrorLog_业务错误不带栈(t *testing.T) {
	err := errx.NewBiz("CITY_QUEUE_FULL", "队列已满")
	meta := BuildErrorLog(err)
	if !meta.Biz {
		t.Fatalf("期望识别为业务错误，meta=%+v", meta)
	}
	if meta.Stack != "" || meta.Origin != "" {
		t.Fatalf("业务错误不应携带栈，meta=%+v", meta)
	}
}

func TestBuildErrorLog_系统错误带cause链与发生处栈(t *testing.T) {
	cause := errors.New("mongo: server selection timeout")
	err := errx.ErrUnavailable.WithCause(cause)
	meta := BuildErrorLog(err)
	if meta.Biz {
		t.Fatalf("期望识别为系统错误，meta=%+v", meta)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望提取 cause 链，meta=%+v", meta)
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望提取发生处栈，origin=%q", meta.Origin)
	}
}
