package app

import "IslandKingdoms/internal/shared/reasoncode"

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	ReasonQueueFull           = NewReason(reasoncode.CityQueueFull, "队列已满")
	ReasonPrereqMissing       = NewReason(reasoncode.CityPrereqMissing, "前置条件未满足")
	ReasonNotEnoughResource   = NewReason(reasoncode.CityNotEnoughResource, "资源不足")
	ReasonNotEnoughPopulation = NewReason(reasoncode.CityNotEnoughPopulation, "人口不足")
	ReasonNotTailTask         = NewReason(reasoncode.CityNotTailTask, "只能取消队尾任务")
	ReasonWorkerSlotsFull     = NewReason(reasoncode.CityWorkerSlotsFull, "工人位已满")
)
