package app

import "IslandKingdoms/modules/kit/errx"

const (
	CodeOfferNotFound     errx.Code = "TRADE_OFFER_NOT_FOUND"
	CodeOwnOffer          errx.Code = "TRADE_OWN_OFFER"
	CodeNotOfferOwner     errx.Code = "TRADE_NOT_OFFER_OWNER"
	CodeNotEnoughResource errx.Code = "TRADE_NOT_ENOUGH_RESOURCE"
	CodeCityNotFound      errx.Code = "TRADE_CITY_NOT_FOUND"
)

var (
	// 并发抢同一张单时，后到者看到的就是这个错误。
	ErrOfferNotFound     = errx.NewBiz(CodeOfferNotFound, "挂单已不存在")
	ErrOwnOffer          = errx.NewBiz(CodeOwnOffer, "不能接受自己的挂单")
	ErrNotOfferOwner     = errx.NewBiz(CodeNotOfferOwner, "不是你的挂单")
	ErrNotEnoughResource = errx.NewBiz(CodeNotEnoughResource, "资源不足")
	ErrCityNotFound      = errx.NewBiz(CodeCityNotFound, "城市不存在或不归属于你")
	ErrUnavailable       = errx.ErrUnavailable
)
