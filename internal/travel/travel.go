package travel

import (
	"errors"
	"math"
	"time"
)

// Mode 是一次行军的目的类别。scout/trade 走快速通道，不看部队构成。
type Mode string

const (
	ModeAttack    Mode = "attack"
	ModeReinforce Mode = "reinforce"
	ModeScout     Mode = "scout"
	ModeTrade     Mode = "trade"
	ModeFoundCity Mode = "found_city"
	ModeReturn    Mode = "return"
)

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

type Weather string

const (
	WeatherClear Weather = "clear"
	WeatherRain  Weather = "rain"
	WeatherStorm Weather = "storm"
	WeatherFog   Weather = "fog"
)

// Conditions 是世界当前的季节与天气，由 world 模块维护。
type Conditions struct {
	Season  Season
	Weather Weather
}

// Roster 概括一次行军所带部队的类别构成，决定哪些修正生效。
type Roster struct {
	HasLand   bool
	HasNaval  bool
	HasFlying bool
}

const (
	// 全服速度系数的缺省值。
	DefaultWorldSpeed = 5.0

	// scout/trade 快速通道：每格固定耗时，结果夹在 [15s, 300s]。
	fastPerTileS = 10.0
	fastMinS     = 15.0
	fastMaxS     = 300.0
)

// ErrNeverArrives 表示有效速度非正，行军永远无法到达。
// 调用方必须把它当作派遣动作的硬拒绝，而不是创建一条不会结束的行军。
var ErrNeverArrives = errors.New("travel: effective speed is not positive")

// Distance 是地图格坐标上的欧氏距离。
func Distance(x1, y1, x2, y2 int) float64 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Sqrt(dx*dx + dy*dy)
}

// TravelTime 计算一次行军的耗时。
//
// scout/trade：距离线性、固定速率、与部队构成无关。
// 其他模式：最慢兵种速度乘季节/天气/风修正后套
// distance / (speed × worldSpeed) × 3600 秒。
func TravelTime(distance, slowestSpeed float64, mode Mode, cond Conditions, roster Roster, windSpeed, worldSpeed float64) (time.Duration, error) {
	if distance < 0 {
		distance = 0
	}
	if mode == ModeScout || mode == ModeTrade {
		s := math.Min(fastMaxS, math.Max(fastMinS, distance*fastPerTileS))
		return time.Duration(s * float64(time.Second)), nil
	}
	if worldSpeed <= 0 {
		worldSpeed = DefaultWorldSpeed
	}

	speed := slowestSpeed
	if roster.HasLand {
		speed *= seasonFactor(cond.Season)
	}
	speed *= weatherFactor(cond.Weather, roster, windSpeed)

	if speed <= 0 {
		return 0, ErrNeverArrives
	}
	s := distance / (speed * worldSpeed) * 3600
	return time.Duration(s * float64(time.Second)), nil
}

// 季节修正只作用于带陆军的行军。
func seasonFactor(s Season) float64 {
	switch s {
	case SeasonSummer:
		return 1.10
	case SeasonWinter:
		return 0.80
	default:
		return 1.0
	}
}

func weatherFactor(w Weather, roster Roster, windSpeed float64) float64 {
	f := 1.0
	switch w {
	case WeatherRain:
		if roster.HasLand {
			f *= 0.90
		}
	case WeatherStorm:
		if roster.HasLand {
			f *= 0.80
		}
		if roster.HasNaval || roster.HasFlying {
			// 风暴对海空打八折，并与风速修正叠乘。
			f *= 0.80
		}
	case WeatherFog:
		f *= 0.75
	}
	if roster.HasNaval || roster.HasFlying {
		f *= WindFactor(windSpeed)
	}
	return f
}

// WindFactor 把 [0,10] 的风速映射到 [0.75,1.25]，风速 5 时为 1。
func WindFactor(windSpeed float64) float64 {
	if windSpeed < 0 {
		windSpeed = 0
	}
	if windSpeed > 10 {
		windSpeed = 10
	}
	return 0.75 + windSpeed/10*0.5
}

// SampleWind 按天气给出本次派遣的风速。rand01 由调用方注入，
// 重放/审计场景可用确定性来源。
func SampleWind(w Weather, rand01 func() float64) float64 {
	lo, hi := 3.0, 7.0
	switch w {
	case WeatherRain:
		lo, hi = 2.0, 8.0
	case WeatherStorm:
		lo, hi = 0.0, 10.0
	}
	return lo + rand01()*(hi-lo)
}

// FoundingTime 是殖民船到达后的建城耗时：
// 24 小时基准，每个移民线性减 1 小时，下限 1 小时。
func FoundingTime(villagers int64) time.Duration {
	s := int64(86400) - villagers*3600
	if s < 3600 {
		s = 3600
	}
	return time.Duration(s) * time.Second
}
