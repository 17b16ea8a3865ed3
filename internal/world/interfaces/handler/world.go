package handler

import (
	"github.com/gin-gonic/gin"

	"IslandKingdoms/internal/shared/transport"
	transporthttp "IslandKingdoms/internal/shared/transport/http"
	"IslandKingdoms/internal/shared/transport/http/middleware"
	"IslandKingdoms/internal/world/app"
	"IslandKingdoms/modules/kit/logx"
)

// World 把世界状态查询与落城动作映射成 HTTP 接口。
type World struct {
	service *app.WorldService
	log     logx.Logger
}

func NewWorld(service *app.WorldService, log logx.Logger) *World {
	return &World{service: service, log: log}
}

func (h *World) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/world")
	g.GET("/conditions", h.Conditions)
	g.GET("/slots/empty-count", h.EmptySlotCount)
	g.POST("/claim", h.ClaimSlot)
}

type claimSlotReq struct {
	CityName string `json:"city_name" binding:"required"`
}

func (h *World) Conditions(c *gin.Context) {
	if _, ok := middleware.PlayerID(c); !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	cond, err := h.service.Conditions(c.Request.Context())
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "world conditions", err)
		return
	}
	transporthttp.OK(c, gin.H{"season": cond.Season, "weather": cond.Weather})
}

func (h *World) EmptySlotCount(c *gin.Context) {
	if _, ok := middleware.PlayerID(c); !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	n, err := h.service.EmptySlotCount(c.Request.Context())
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "world empty slot count", err)
		return
	}
	transporthttp.OK(c, gin.H{"empty_slots": n})
}

func (h *World) ClaimSlot(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req claimSlotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	city, err := h.service.ClaimSlot(c.Request.Context(), playerID, req.CityName)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "world claim slot", err)
		return
	}
	transporthttp.OK(c, city)
}
