package handler

import (
	"github.com/gin-gonic/gin"

	"IslandKingdoms/internal/shared/transport"
	transporthttp "IslandKingdoms/internal/shared/transport/http"
	"IslandKingdoms/internal/shared/transport/http/middleware"
	"IslandKingdoms/internal/trade/app"
	"IslandKingdoms/internal/trade/domain"
	"IslandKingdoms/modules/kit/logx"
)

// Trade 把交易所挂单动作映射成 HTTP 接口。
type Trade struct {
	service *app.TradeService
	log     logx.Logger
}

func NewTrade(service *app.TradeService, log logx.Logger) *Trade {
	return &Trade{service: service, log: log}
}

func (h *Trade) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/trade")
	g.GET("/list", h.List)
	g.POST("/create", h.Create)
	g.POST("/accept", h.Accept)
	g.POST("/cancel", h.Cancel)
}

type createOfferReq struct {
	OriginCityID   int64  `json:"origin_city_id" binding:"required"`
	OfferResource  string `json:"offer_resource" binding:"required"`
	OfferAmount    int64  `json:"offer_amount" binding:"required"`
	DemandResource string `json:"demand_resource" binding:"required"`
	DemandAmount   int64  `json:"demand_amount" binding:"required"`
}

type acceptOfferReq struct {
	CityID  int64  `json:"city_id" binding:"required"`
	OfferID string `json:"offer_id" binding:"required"`
}

type cancelOfferReq struct {
	OfferID string `json:"offer_id" binding:"required"`
}

func (h *Trade) List(c *gin.Context) {
	if _, ok := middleware.PlayerID(c); !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	offers, err := h.service.List(c.Request.Context())
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "trade list", err)
		return
	}
	transporthttp.OK(c, offers)
}

func (h *Trade) Create(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req createOfferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	offer, err := h.service.CreateOffer(c.Request.Context(), playerID, req.OriginCityID,
		domain.Stake{Resource: req.OfferResource, Amount: req.OfferAmount},
		domain.Stake{Resource: req.DemandResource, Amount: req.DemandAmount})
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "trade create offer", err)
		return
	}
	transporthttp.OK(c, offer)
}

func (h *Trade) Accept(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req acceptOfferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.service.AcceptOffer(c.Request.Context(), playerID, req.CityID, req.OfferID); err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "trade accept offer", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *Trade) Cancel(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req cancelOfferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.service.CancelOffer(c.Request.Context(), playerID, req.OfferID); err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "trade cancel offer", err)
		return
	}
	transporthttp.OK(c, nil)
}
