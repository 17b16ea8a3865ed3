package app

import "IslandKingdoms/modules/kit/errx"

const (
	CodeAllianceNotFound  errx.Code = "ALLIANCE_NOT_FOUND"
	CodeNotLeader         errx.Code = "ALLIANCE_NOT_LEADER"
	CodeNotMember         errx.Code = "ALLIANCE_NOT_MEMBER"
	CodeWonderExists      errx.Code = "ALLIANCE_WONDER_EXISTS"
	CodeNoWonder          errx.Code = "ALLIANCE_NO_WONDER"
	CodeProgressShort     errx.Code = "ALLIANCE_PROGRESS_SHORT"
	CodeWonderMaxLevel    errx.Code = "ALLIANCE_WONDER_MAX_LEVEL"
	CodeCityNotFound      errx.Code = "ALLIANCE_CITY_NOT_FOUND"
	CodeNotEnoughResource errx.Code = "ALLIANCE_NOT_ENOUGH_RESOURCE"
)

var (
	ErrAllianceNotFound  = errx.NewBiz(CodeAllianceNotFound, "联盟不存在")
	ErrNotLeader         = errx.NewBiz(CodeNotLeader, "只有盟主可以执行该操作")
	ErrNotMember         = errx.NewBiz(CodeNotMember, "不是联盟成员")
	ErrWonderExists      = errx.NewBiz(CodeWonderExists, "联盟已有在建奇观")
	ErrNoWonder          = errx.NewBiz(CodeNoWonder, "联盟没有奇观")
	ErrProgressShort     = errx.NewBiz(CodeProgressShort, "捐献进度不足")
	ErrWonderMaxLevel    = errx.NewBiz(CodeWonderMaxLevel, "奇观已到最高等级")
	ErrCityNotFound      = errx.NewBiz(CodeCityNotFound, "城市不存在或不归属于你")
	ErrNotEnoughResource = errx.NewBiz(CodeNotEnoughResource, "资源不足")
	ErrUnavailable       = errx.ErrUnavailable
)
