package handler

import (
	"github.com/gin-gonic/gin"

	"IslandKingdoms/internal/alliance/app"
	"IslandKingdoms/internal/shared/transport"
	transporthttp "IslandKingdoms/internal/shared/transport/http"
	"IslandKingdoms/internal/shared/transport/http/middleware"
	"IslandKingdoms/modules/kit/logx"
)

// Alliance 把联盟奇观动作映射成 HTTP 接口。
type Alliance struct {
	service *app.WonderService
	log     logx.Logger
}

func NewAlliance(service *app.WonderService, log logx.Logger) *Alliance {
	return &Alliance{service: service, log: log}
}

func (h *Alliance) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/alliance")
	g.GET("/:id", h.Get)
	g.POST("/wonder/start", h.StartWonder)
	g.POST("/wonder/donate", h.Donate)
	g.POST("/wonder/claim", h.ClaimLevel)
	g.POST("/wonder/demolish", h.Demolish)
}

type startWonderReq struct {
	AllianceID int64 `json:"alliance_id" binding:"required"`
	CityID     int64 `json:"city_id" binding:"required"`
	IslandID   int64 `json:"island_id" binding:"required"`
	X          int   `json:"x"`
	Y          int   `json:"y"`
}

type donateReq struct {
	AllianceID int64  `json:"alliance_id" binding:"required"`
	CityID     int64  `json:"city_id" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Amount     int64  `json:"amount" binding:"required"`
}

type allianceIDReq struct {
	AllianceID int64 `json:"alliance_id" binding:"required"`
}

func (h *Alliance) Get(c *gin.Context) {
	if _, ok := middleware.PlayerID(c); !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var uri struct {
		ID int64 `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	a, err := h.service.Get(c.Request.Context(), uri.ID)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "alliance get", err)
		return
	}
	transporthttp.OK(c, a)
}

func (h *Alliance) StartWonder(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req startWonderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := h.service.StartWonder(c.Request.Context(), playerID,
		req.AllianceID, req.CityID, req.IslandID, req.X, req.Y)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "alliance start wonder", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *Alliance) Donate(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req donateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := h.service.Donate(c.Request.Context(), playerID,
		req.AllianceID, req.CityID, req.Resource, req.Amount)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "alliance donate", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *Alliance) ClaimLevel(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req allianceIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.service.ClaimLevel(c.Request.Context(), playerID, req.AllianceID); err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "alliance claim level", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *Alliance) Demolish(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req allianceIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.service.Demolish(c.Request.Context(), playerID, req.AllianceID); err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "alliance demolish wonder", err)
		return
	}
	transporthttp.OK(c, nil)
}
