package app

import "IslandKingdoms/modules/kit/errx"

const (
	CodeMovementNotFound  errx.Code = "MOVEMENT_NOT_FOUND"
	CodeNotOwner          errx.Code = "MOVEMENT_NOT_OWNER"
	CodeOriginNotFound    errx.Code = "MOVEMENT_ORIGIN_NOT_FOUND"
	CodeEmptyRoster       errx.Code = "MOVEMENT_EMPTY_ROSTER"
	CodeUnknownUnit       errx.Code = "MOVEMENT_UNKNOWN_UNIT"
	CodeNotEnoughUnits    errx.Code = "MOVEMENT_NOT_ENOUGH_UNITS"
	CodeNoTransport       errx.Code = "MOVEMENT_NO_TRANSPORT_CAPACITY"
	CodeSameIslandOnly    errx.Code = "MOVEMENT_SAME_ISLAND_ONLY"
	CodeBadFormation      errx.Code = "MOVEMENT_BAD_FORMATION"
	CodeGraceExpired      errx.Code = "MOVEMENT_GRACE_EXPIRED"
	CodeAlreadyReturning  errx.Code = "MOVEMENT_ALREADY_RETURNING"
	CodeAlreadyArrived    errx.Code = "MOVEMENT_ALREADY_ARRIVED"
	CodeNeedsVillager     errx.Code = "MOVEMENT_NEEDS_VILLAGER"
	CodeNeverArrives      errx.Code = "MOVEMENT_NEVER_ARRIVES"
	CodeNoReinforcements  errx.Code = "MOVEMENT_NO_REINFORCEMENTS"
	CodeNotEnoughSilver   errx.Code = "MOVEMENT_NOT_ENOUGH_CAVE_SILVER"
	CodeNotEnoughResource errx.Code = "MOVEMENT_NOT_ENOUGH_RESOURCE"
	CodeMarketCapacity    errx.Code = "MOVEMENT_MARKET_CAPACITY"
	CodeNoHero            errx.Code = "MOVEMENT_NO_HERO"
	CodeHeroAway          errx.Code = "MOVEMENT_HERO_AWAY"
)

var (
	ErrMovementNotFound  = errx.NewBiz(CodeMovementNotFound, "行军不存在")
	ErrNotOwner          = errx.NewBiz(CodeNotOwner, "不是你的行军")
	ErrOriginNotFound    = errx.NewBiz(CodeOriginNotFound, "出发城不存在或不归属于你")
	ErrEmptyRoster       = errx.NewBiz(CodeEmptyRoster, "出征名单为空")
	ErrUnknownUnit       = errx.NewBiz(CodeUnknownUnit, "未知兵种")
	ErrNotEnoughUnits    = errx.NewBiz(CodeNotEnoughUnits, "城内兵力不足")
	ErrNoTransport       = errx.NewBiz(CodeNoTransport, "运力不足以跨岛运送陆军")
	ErrSameIslandOnly    = errx.NewBiz(CodeSameIslandOnly, "该目标只允许同岛派遣")
	ErrBadFormation      = errx.NewBiz(CodeBadFormation, "阵型只能引用出征名单内数量非零的陆军")
	ErrGraceExpired      = errx.NewBiz(CodeGraceExpired, "已过撤销宽限期，只能折返")
	ErrAlreadyReturning  = errx.NewBiz(CodeAlreadyReturning, "行军已在返程")
	ErrAlreadyArrived    = errx.NewBiz(CodeAlreadyArrived, "行军已到达")
	ErrNeedsVillager     = errx.NewBiz(CodeNeedsVillager, "建城派遣至少需要一名移民")
	ErrNeverArrives      = errx.NewBiz(CodeNeverArrives, "有效速度非正，行军永远无法到达")
	ErrNoReinforcements  = errx.NewBiz(CodeNoReinforcements, "没有你在该城的驻防")
	ErrNotEnoughSilver   = errx.NewBiz(CodeNotEnoughSilver, "洞穴白银不足")
	ErrNotEnoughResource = errx.NewBiz(CodeNotEnoughResource, "资源不足")
	ErrMarketCapacity    = errx.NewBiz(CodeMarketCapacity, "超出市场单次运输容量")
	ErrNoHero            = errx.NewBiz(CodeNoHero, "该城没有这名英雄")
	ErrHeroAway          = errx.NewBiz(CodeHeroAway, "英雄已在途")
	ErrUnavailable       = errx.ErrUnavailable
)
