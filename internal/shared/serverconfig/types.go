package serverconfig

import "time"

type Config struct {
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	GameServer GameServerConfig `yaml:"gameserver" mapstructure:"gameserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Logic      LogicConfig      `yaml:"logic" mapstructure:"logic"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type GameServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type LogicConfig struct {
	// JSONData 是游戏数值表（建筑/兵种/科研/神祇）所在目录。
	JSONData string `yaml:"json_data" mapstructure:"json_data"`
	ServerID int    `yaml:"server_id" mapstructure:"server_id"`
	// InstantBuild 为 true 时所有任务时长压到 1 秒，仅供联调/压测。
	InstantBuild bool `yaml:"instant_build" mapstructure:"instant_build"`
	// WorldSpeed 是全服速度系数，作用于行军耗时。
	WorldSpeed float64 `yaml:"world_speed" mapstructure:"world_speed"`
	// SlotClaimRetry 是抢占空城位整批失败后的重试上限。
	SlotClaimRetry int `yaml:"slot_claim_retry" mapstructure:"slot_claim_retry"`
	// CacheTTL 是世界聚合查询缓存的过期时间。
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}
