package app

import "IslandKingdoms/modules/kit/errx"

type Code = errx.Code

const (
	CodeCityNotFound         Code = "CITY_NOT_FOUND"
	CodeNotOwner             Code = "CITY_NOT_OWNER"
	CodeQueueFull            Code = "CITY_QUEUE_FULL"
	CodeMaxLevel             Code = "CITY_MAX_LEVEL"
	CodeLevelZero            Code = "CITY_LEVEL_ZERO"
	CodePrereqMissing        Code = "CITY_PREREQ_MISSING"
	CodeNotEnoughResource    Code = "CITY_NOT_ENOUGH_RESOURCE"
	CodeNotEnoughPopulation  Code = "CITY_NOT_ENOUGH_POPULATION"
	CodeNotEnoughFavor       Code = "CITY_NOT_ENOUGH_FAVOR"
	CodeNotEnoughPoints      Code = "CITY_NOT_ENOUGH_POINTS"
	CodeWrongBuilding        Code = "CITY_WRONG_BUILDING"
	CodeAlreadyResearched    Code = "CITY_ALREADY_RESEARCHED"
	CodeNotTailTask          Code = "CITY_NOT_TAIL_TASK"
	CodeTaskNotFound         Code = "CITY_TASK_NOT_FOUND"
	CodeNoWounded            Code = "CITY_NO_WOUNDED"
	CodeHospitalFull         Code = "CITY_HOSPITAL_FULL"
	CodeWorkerSlotsFull      Code = "CITY_WORKER_SLOTS_FULL"
	CodeNoWorker             Code = "CITY_NO_WORKER"
	CodePresetLimit          Code = "CITY_PRESET_LIMIT"
	CodePresetNotFound       Code = "CITY_PRESET_NOT_FOUND"
	CodeUnknownID            Code = "CITY_UNKNOWN_ID"
	CodeWrongGod             Code = "CITY_WRONG_GOD"
	CodeUnknownSpellEffect   Code = "CITY_UNKNOWN_SPELL_EFFECT"
	CodeInternalServer       Code = errx.CodeInternal
	CodeUnavailable          Code = errx.CodeUnavailable
)

type Error = errx.Error

// 常用哨兵错误：业务拒绝在任何状态改动之前同步返回，不产生半成品状态。
var (
	ErrCityNotFound        = errx.NewBiz(CodeCityNotFound, "城市不存在")
	ErrNotOwner            = errx.NewBiz(CodeNotOwner, "不是你的城市")
	ErrQueueFull           = errx.NewBiz(CodeQueueFull, "队列已满")
	ErrMaxLevel            = errx.NewBiz(CodeMaxLevel, "已达最高等级")
	ErrLevelZero           = errx.NewBiz(CodeLevelZero, "建筑等级为零")
	ErrPrereqMissing       = errx.NewBiz(CodePrereqMissing, "前置条件未满足")
	ErrNotEnoughResource   = errx.NewBiz(CodeNotEnoughResource, "资源不足")
	ErrNotEnoughPopulation = errx.NewBiz(CodeNotEnoughPopulation, "人口不足")
	ErrNotEnoughFavor      = errx.NewBiz(CodeNotEnoughFavor, "信仰不足")
	ErrNotEnoughPoints     = errx.NewBiz(CodeNotEnoughPoints, "研究点不足")
	ErrWrongBuilding       = errx.NewBiz(CodeWrongBuilding, "训练建筑不匹配或未建造")
	ErrAlreadyResearched   = errx.NewBiz(CodeAlreadyResearched, "已研究或已在队列")
	ErrNotTailTask         = errx.NewBiz(CodeNotTailTask, "只能取消队尾任务")
	ErrTaskNotFound        = errx.NewBiz(CodeTaskNotFound, "任务不存在")
	ErrNoWounded           = errx.NewBiz(CodeNoWounded, "伤兵不足")
	ErrHospitalFull        = errx.NewBiz(CodeHospitalFull, "医馆容量不足")
	ErrWorkerSlotsFull     = errx.NewBiz(CodeWorkerSlotsFull, "工人位已满")
	ErrNoWorker            = errx.NewBiz(CodeNoWorker, "没有可撤下的工人")
	ErrPresetLimit         = errx.NewBiz(CodePresetLimit, "工人预设最多 3 套")
	ErrPresetNotFound      = errx.NewBiz(CodePresetNotFound, "工人预设不存在")
	ErrUnknownID           = errx.NewBiz(CodeUnknownID, "未知的配置 id")
	ErrWrongGod            = errx.NewBiz(CodeWrongGod, "当前信奉的神不符")
	ErrUnavailable         = errx.ErrUnavailable
	ErrInternalServer      = errx.ErrInternal
)

// ErrUnknownSpellEffect 是契约违背：法术效果类型不在处理集合内。
// 必须响亮失败，禁止静默 no-op。
var ErrUnknownSpellEffect = errx.NewSys(CodeUnknownSpellEffect, "未实现的法术效果类型")
