package wonder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const wonderFile = "Wonder.json"

type Config struct {
	// 发起建造的一次性固定成本（从发起成员自己的城市扣）。
	StartCost struct {
		Wood   int64 `json:"wood"`
		Stone  int64 `json:"stone"`
		Silver int64 `json:"silver"`
	} `json:"start_cost"`

	// level L 的成本 = base × growth^L（三种资源同时满足才能领取）。
	BaseLevelCost struct {
		Wood   int64 `json:"wood"`
		Stone  int64 `json:"stone"`
		Silver int64 `json:"silver"`
	} `json:"base_level_cost"`
	Growth   float64 `json:"growth"`
	MaxLevel int     `json:"max_level"`
}

var Conf = &Config{}

func Load(dir string) {
	path := filepath.Join(dir, wonderFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("load Wonder config failed: read %q: %w", path, err))
	}
	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		panic(fmt.Errorf("load Wonder config failed: unmarshal %q: %w", path, err))
	}
	if c.Growth <= 1 || c.MaxLevel <= 0 {
		panic(fmt.Errorf("load Wonder config failed: invalid growth/max_level in %q", path))
	}
	*Conf = c
}
