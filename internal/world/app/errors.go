package app

import "IslandKingdoms/modules/kit/errx"

const (
	CodeSlotTaken     errx.Code = "WORLD_SLOT_TAKEN"
	CodeWorldFull     errx.Code = "WORLD_FULL"
	CodeWorldNotFound errx.Code = "WORLD_NOT_FOUND"
)

var (
	// 单个城位在事务内被别人抢先，外层循环据此跳到下一个候选。
	ErrSlotTaken     = errx.NewBiz(CodeSlotTaken, "城位已被占用")
	ErrWorldFull     = errx.NewBiz(CodeWorldFull, "世界已满，请稍后再试")
	ErrWorldNotFound = errx.NewBiz(CodeWorldNotFound, "世界不存在")
	ErrUnavailable   = errx.ErrUnavailable
)
