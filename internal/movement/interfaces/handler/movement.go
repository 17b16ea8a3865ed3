package handler

import (
	"github.com/gin-gonic/gin"

	"IslandKingdoms/internal/economy"
	"IslandKingdoms/internal/movement/app"
	"IslandKingdoms/internal/movement/domain"
	"IslandKingdoms/internal/shared/transport"
	transporthttp "IslandKingdoms/internal/shared/transport/http"
	"IslandKingdoms/internal/shared/transport/http/middleware"
	"IslandKingdoms/modules/kit/logx"
)

// Movement 把行军派遣与生命周期动作映射成 HTTP 接口。
type Movement struct {
	service *app.DispatchService
	log     logx.Logger
}

func NewMovement(service *app.DispatchService, log logx.Logger) *Movement {
	return &Movement{service: service, log: log}
}

func (h *Movement) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/movement")
	g.GET("/list", h.List)
	g.POST("/attack", h.Attack)
	g.POST("/reinforce", h.Reinforce)
	g.POST("/scout", h.Scout)
	g.POST("/trade", h.SendResources)
	g.POST("/found", h.FoundCity)
	g.POST("/hero/assign", h.AssignHero)
	g.POST("/recall", h.Recall)
	g.POST("/turnaround", h.TurnAround)
	g.POST("/withdraw", h.Withdraw)
}

// targetDTO 描述行军目标：目标城或裸坐标（村庄/遗迹/神城/空位）。
type targetDTO struct {
	Kind     string `json:"kind" binding:"required"`
	CityID   int64  `json:"city_id"`
	IslandID int64  `json:"island_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

func (t targetDTO) toTarget() app.Target {
	return app.Target{
		Kind:   domain.TargetKind(t.Kind),
		CityID: t.CityID,
		Point:  domain.Point{IslandID: t.IslandID, X: t.X, Y: t.Y},
	}
}

type formationDTO struct {
	Front string `json:"front"`
	Mid   string `json:"mid"`
	Back  string `json:"back"`
}

type attackReq struct {
	OriginCityID int64            `json:"origin_city_id" binding:"required"`
	Target       targetDTO        `json:"target" binding:"required"`
	Units        map[string]int64 `json:"units" binding:"required"`
	Formation    *formationDTO    `json:"formation"`
}

type reinforceReq struct {
	OriginCityID int64            `json:"origin_city_id" binding:"required"`
	Target       targetDTO        `json:"target" binding:"required"`
	Units        map[string]int64 `json:"units" binding:"required"`
}

type scoutReq struct {
	OriginCityID int64     `json:"origin_city_id" binding:"required"`
	Target       targetDTO `json:"target" binding:"required"`
	Silver       int64     `json:"silver" binding:"required"`
}

type sendResourcesReq struct {
	OriginCityID int64     `json:"origin_city_id" binding:"required"`
	Target       targetDTO `json:"target" binding:"required"`
	Wood         int64     `json:"wood"`
	Stone        int64     `json:"stone"`
	Silver       int64     `json:"silver"`
}

type assignHeroReq struct {
	OriginCityID int64     `json:"origin_city_id" binding:"required"`
	Target       targetDTO `json:"target" binding:"required"`
	HeroID       string    `json:"hero_id" binding:"required"`
}

type movementIDReq struct {
	MovementID int64 `json:"movement_id" binding:"required"`
}

type withdrawReq struct {
	TargetCityID int64 `json:"target_city_id" binding:"required"`
	OriginCityID int64 `json:"origin_city_id" binding:"required"`
}

func (h *Movement) List(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	movements, err := h.service.List(c.Request.Context(), playerID)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement list", err)
		return
	}
	transporthttp.OK(c, movements)
}

func (h *Movement) Attack(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req attackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	var formation *domain.Formation
	if req.Formation != nil {
		formation = &domain.Formation{
			Front: req.Formation.Front,
			Mid:   req.Formation.Mid,
			Back:  req.Formation.Back,
		}
	}
	m, err := h.service.Attack(c.Request.Context(), playerID, req.OriginCityID,
		req.Target.toTarget(), req.Units, formation)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement attack", err)
		return
	}
	transporthttp.OK(c, m)
}

func (h *Movement) Reinforce(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req reinforceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	m, err := h.service.Reinforce(c.Request.Context(), playerID, req.OriginCityID,
		req.Target.toTarget(), req.Units)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement reinforce", err)
		return
	}
	transporthttp.OK(c, m)
}

func (h *Movement) Scout(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req scoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	m, err := h.service.Scout(c.Request.Context(), playerID, req.OriginCityID,
		req.Target.toTarget(), req.Silver)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement scout", err)
		return
	}
	transporthttp.OK(c, m)
}

func (h *Movement) SendResources(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req sendResourcesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	m, err := h.service.SendResources(c.Request.Context(), playerID, req.OriginCityID,
		req.Target.toTarget(), economy.Resources{Wood: req.Wood, Stone: req.Stone, Silver: req.Silver})
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement send resources", err)
		return
	}
	transporthttp.OK(c, m)
}

func (h *Movement) FoundCity(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req reinforceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	m, err := h.service.FoundCity(c.Request.Context(), playerID, req.OriginCityID,
		req.Target.toTarget(), req.Units)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement found city", err)
		return
	}
	transporthttp.OK(c, m)
}

func (h *Movement) AssignHero(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req assignHeroReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	m, err := h.service.AssignHero(c.Request.Context(), playerID, req.OriginCityID,
		req.Target.toTarget(), req.HeroID)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement assign hero", err)
		return
	}
	transporthttp.OK(c, m)
}

func (h *Movement) Recall(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req movementIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.service.Recall(c.Request.Context(), playerID, req.MovementID); err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement recall", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *Movement) TurnAround(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req movementIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.service.TurnAround(c.Request.Context(), playerID, req.MovementID); err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement turn around", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *Movement) Withdraw(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req withdrawReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	m, err := h.service.WithdrawReinforcements(c.Request.Context(), playerID,
		req.TargetCityID, req.OriginCityID)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "movement withdraw reinforcements", err)
		return
	}
	transporthttp.OK(c, m)
}
