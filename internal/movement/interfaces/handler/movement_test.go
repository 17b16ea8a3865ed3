package handler

import (
	"encoding/json"
	"testing"

	"IslandKingdoms/internal/movement/domain"
)

func TestTargetDTO_能从JSON解析并转成派遣目标(t *testing.T) {
	raw := []byte(`{"kind":"village","city_id":0,"island_id":3,"x":12,"y":7}`)

	var dto targetDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	target := dto.toTarget()
	if target.Kind != domain.TargetVillage {
		t.Fatalf("目标类别不符: %v", target.Kind)
	}
	if target.Point.IslandID != 3 || target.Point.X != 12 || target.Point.Y != 7 {
		t.Fatalf("落点不符: %+v", target.Point)
	}
}

func TestFormationDTO_空阵型转成nil(t *testing.T) {
	var req attackReq
	raw := []byte(`{"origin_city_id":1,"target":{"kind":"city","city_id":9},"units":{"swordsman":10}}`)
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if req.Formation != nil {
		t.Fatalf("未指定阵型时应为 nil，got=%+v", req.Formation)
	}
}
