package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"IslandKingdoms/internal/city/app"
	"IslandKingdoms/internal/city/domain"
	"IslandKingdoms/internal/shared/transport"
	transporthttp "IslandKingdoms/internal/shared/transport/http"
	"IslandKingdoms/internal/shared/transport/http/middleware"
	"IslandKingdoms/modules/kit/logx"
)

// City 把城市动作映射成 HTTP 接口。所有路由都要求登录态。
type City struct {
	service *app.CityService
	log     logx.Logger
}

func NewCity(service *app.CityService, log logx.Logger) *City {
	return &City{service: service, log: log}
}

func (h *City) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/city")
	g.GET("/:id", h.Get)
	g.POST("/upgrade", h.Upgrade)
	g.POST("/demolish", h.Demolish)
	g.POST("/cancel", h.Cancel)
	g.POST("/train", h.Train)
	g.POST("/heal", h.Heal)
	g.POST("/research", h.Research)
	g.POST("/worship", h.Worship)
	g.POST("/cast", h.Cast)
	g.POST("/worker/assign", h.AssignWorker)
	g.POST("/worker/remove", h.RemoveWorker)
	g.POST("/worker/preset/save", h.SavePreset)
	g.POST("/worker/preset/apply", h.ApplyPreset)
	g.POST("/worker/preset/delete", h.DeletePreset)
}

type buildingReq struct {
	CityID     int64  `json:"city_id" binding:"required"`
	BuildingID string `json:"building_id" binding:"required"`
}

type cancelReq struct {
	CityID int64  `json:"city_id" binding:"required"`
	Queue  string `json:"queue" binding:"required"`
	TaskID int64  `json:"task_id" binding:"required"`
}

type unitBatchReq struct {
	CityID int64  `json:"city_id" binding:"required"`
	UnitID string `json:"unit_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
}

type researchReq struct {
	CityID     int64  `json:"city_id" binding:"required"`
	ResearchID string `json:"research_id" binding:"required"`
}

type worshipReq struct {
	CityID int64  `json:"city_id" binding:"required"`
	GodID  string `json:"god_id" binding:"required"`
}

type castReq struct {
	CityID         int64  `json:"city_id" binding:"required"`
	SpellID        string `json:"spell_id" binding:"required"`
	TargetBuilding string `json:"target_building"`
}

type presetSaveReq struct {
	CityID     int64          `json:"city_id" binding:"required"`
	Name       string         `json:"name" binding:"required"`
	Assignment map[string]int `json:"assignment" binding:"required"`
}

type presetReq struct {
	CityID int64  `json:"city_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

func (h *City) Get(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
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

	city, err := h.service.Get(c.Request.Context(), domain.CityID(uri.ID))
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "city get", err)
		return
	}
	if city == nil || int64(city.PlayerID) != playerID {
		transporthttp.Fail(c, transport.BizRejected, "城市不存在或不归属于你")
		return
	}
	transporthttp.OK(c, city)
}

func (h *City) Upgrade(c *gin.Context) {
	h.buildingAction(c, "city upgrade", h.service.UpgradeBuilding)
}

func (h *City) Demolish(c *gin.Context) {
	h.buildingAction(c, "city demolish", h.service.DemolishBuilding)
}

func (h *City) Cancel(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req cancelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := h.service.CancelQueueTask(c.Request.Context(),
		domain.CityID(req.CityID), domain.PlayerID(playerID), domain.QueueKind(req.Queue), req.TaskID)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "city cancel task", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *City) Train(c *gin.Context) {
	h.unitBatchAction(c, "city train", h.service.TrainUnits)
}

func (h *City) Heal(c *gin.Context) {
	h.unitBatchAction(c, "city heal", h.service.HealUnits)
}

func (h *City) Research(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req researchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := h.service.StartResearch(c.Request.Context(),
		domain.CityID(req.CityID), domain.PlayerID(playerID), req.ResearchID)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "city research", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *City) Worship(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req worshipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := h.service.Worship(c.Request.Context(),
		domain.CityID(req.CityID), domain.PlayerID(playerID), req.GodID)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "city worship", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *City) Cast(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req castReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := h.service.CastSpell(c.Request.Context(),
		domain.CityID(req.CityID), domain.PlayerID(playerID), req.SpellID, req.TargetBuilding)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "city cast spell", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *City) AssignWorker(c *gin.Context) {
	h.buildingAction(c, "city assign worker", h.service.AssignWorker)
}

func (h *City) RemoveWorker(c *gin.Context) {
	h.buildingAction(c, "city remove worker", h.service.RemoveWorker)
}

func (h *City) SavePreset(c *gin.Context) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req presetSaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := h.service.SaveWorkerPreset(c.Request.Context(),
		domain.CityID(req.CityID), domain.PlayerID(playerID), req.Name, req.Assignment)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, "city save preset", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *City) ApplyPreset(c *gin.Context) {
	h.presetAction(c, "city apply preset", h.service.ApplyWorkerPreset)
}

func (h *City) DeletePreset(c *gin.Context) {
	h.presetAction(c, "city delete preset", h.service.DeleteWorkerPreset)
}

func (h *City) buildingAction(c *gin.Context, action string,
	fn func(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, buildingID string) error) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req buildingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := fn(c.Request.Context(), domain.CityID(req.CityID), domain.PlayerID(playerID), req.BuildingID)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, action, err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *City) unitBatchAction(c *gin.Context, action string,
	fn func(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, unitID string, amount int64) error) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req unitBatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := fn(c.Request.Context(), domain.CityID(req.CityID), domain.PlayerID(playerID), req.UnitID, req.Amount)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, action, err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *City) presetAction(c *gin.Context, action string,
	fn func(ctx context.Context, cityID domain.CityID, playerID domain.PlayerID, name string) error) {
	playerID, ok := middleware.PlayerID(c)
	if !ok {
		transporthttp.Fail(c, transport.Unauthorized, "登录已失效")
		return
	}
	var req presetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, transport.InvalidParam, "参数有误")
		return
	}

	err := fn(c.Request.Context(), domain.CityID(req.CityID), domain.PlayerID(playerID), req.Name)
	if err != nil {
		transporthttp.Error(c.Request.Context(), c, h.log, action, err)
		return
	}
	transporthttp.OK(c, nil)
}
