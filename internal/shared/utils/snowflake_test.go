package utils

import "testing"

func TestIDGen_时钟回拨仍单调递增(t *testing.T) {
	g, err := NewIDGen(3)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	ms := idEpochMilli + 1000
	g.nowMs = func() int64 { return ms }

	a := g.NextID()
	ms -= 100 // 时钟回拨
	b := g.NextID()
	c := g.NextID()
	if b <= a || c <= b {
		t.Fatalf("id 应严格递增：%d %d %d", a, b, c)
	}
}

func TestIDGen_服务器号越界拒绝(t *testing.T) {
	if _, err := NewIDGen(maxServerID + 1); err == nil {
		t.Fatalf("越界的服务器号应报错")
	}
	if _, err := NewIDGen(-1); err == nil {
		t.Fatalf("负的服务器号应报错")
	}
}
