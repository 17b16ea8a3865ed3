package domain

import (
	"time"

	"IslandKingdoms/internal/travel"
)

// Slot 是世界地图上的一个城位。无主时 OwnerPlayerID 为 0。
//
// 城位是典型的争抢对象：多个玩家可能同时盯上同一个空位，
// 归属只以事务内重读到的状态为准。
type Slot struct {
	ID       int64 `bson:"_id"`
	IslandID int64 `bson:"island_id"`
	X        int   `bson:"x"`
	Y        int   `bson:"y"`

	// 无主时两个字段都落 0，空位查询依赖这一点。
	OwnerPlayerID int64 `bson:"owner_player_id"`
	OwnerCityID   int64 `bson:"owner_city_id"`
}

func (s *Slot) Empty() bool {
	return s.OwnerPlayerID == 0
}

// Claim 把城位划给一座城。已有主时返回 false。
func (s *Slot) Claim(playerID, cityID int64) bool {
	if !s.Empty() {
		return false
	}
	s.OwnerPlayerID = playerID
	s.OwnerCityID = cityID
	return true
}

// World 是全服共享的世界状态文档：季节与天气喂给行军计算。
type World struct {
	ID        int64          `bson:"_id"`
	Season    travel.Season  `bson:"season"`
	Weather   travel.Weather `bson:"weather"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

func (w *World) Conditions() travel.Conditions {
	return travel.Conditions{Season: w.Season, Weather: w.Weather}
}
