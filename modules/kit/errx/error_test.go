package errx

import (
	"errors"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("CITY_QUEUE_FULL", "queue full").WithData("city", 1).WithCause(errors.New("cause1"))
	e2 := NewBiz("CITY_QUEUE_FULL", "another msg").WithData("city", 2).WithCause(errors.New("cause2"))
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is 只按 code 判断语义，e1=%v e2=%v", e1, e2)
	}
	e3 := NewBiz("CITY_NOT_ENOUGH_RESOURCE", "poor")
	if errors.Is(e1, e3) {
		t.Fatalf("code 不同不应相等，e1=%v e3=%v", e1, e3)
	}
}

func TestError_业务错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("offer gone")
	err := NewBiz("TRADE_OFFER_NOT_FOUND", "交易已不存在").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	cause := errors.New("mongo: connection reset")
	sys := ErrUnavailable.WithCause(cause)
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误在转换处捕获栈，got=%v", got)
	}

	// 再包一层：下层已有栈时上层不重复捕获
	sys2 := ErrInternal.WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层系统错误不重复捕获栈，got=%v", got)
	}
}

func TestError_WithData_派生不污染哨兵(t *testing.T) {
	derived := ErrConflict.WithData("slot_id", 42)
	if ErrConflict.Data() != nil {
		t.Fatalf("哨兵错误本体不应被 WithData 修改，data=%v", ErrConflict.Data())
	}
	if got := derived.Data()["slot_id"]; got != 42 {
		t.Fatalf("派生对象应携带 data，got=%v", got)
	}
}

func TestError_Reason快捷方式(t *testing.T) {
	r := reasonStub("city.queue_full")
	err := NewBiz("CITY_QUEUE_FULL", "").WithReason(r)
	if got := err.Reason(); got != "city.queue_full" {
		t.Fatalf("期望 reason=city.queue_full，got=%q", got)
	}
}

type reasonStub string

func (r reasonStub) ReasonCode() string { return string(r) }
