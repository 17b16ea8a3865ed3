package domain

import "time"

// 挂单可供交换的资源名。
const (
	ResourceWood   = "wood"
	ResourceStone  = "stone"
	ResourceSilver = "silver"
)

func ValidResource(name string) bool {
	switch name {
	case ResourceWood, ResourceStone, ResourceSilver:
		return true
	}
	return false
}

// Stake 是挂单的一侧：某种资源的某个数量。
type Stake struct {
	Resource string `bson:"resource"`
	Amount   int64  `bson:"amount"`
}

// Offer 是交易所里的一张挂单。
// 创建时 Offer 的资源立刻从挂单城锁出；接受时双方同时清算并删单。
type Offer struct {
	ID           string    `bson:"_id"`
	PlayerID     int64     `bson:"player_id"`
	OriginCityID int64     `bson:"origin_city_id"`
	Offer        Stake     `bson:"offer"`
	Demand       Stake     `bson:"demand"`
	CreatedAt    time.Time `bson:"created_at"`
}
