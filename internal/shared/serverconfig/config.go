package serverconfig

import (
	"os"

	"IslandKingdoms/internal/shared/config"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

func Load() {
	config.Load(defaultConfigRelPath, &Conf)
	// 环境变量优先；未设置时回填配置中的 jwt_secret，兼容本地开发。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
}
