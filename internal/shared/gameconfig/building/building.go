package building

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const buildingFile = "Building.json"

// 约定的建筑类别。
const (
	KindProduction = "production"
	KindStorage    = "storage"
	KindMilitary   = "military"
	KindSpecial    = "special"
)

// 有专属机制的建筑 id（其余建筑只按类别处理）。
const (
	Senate       = "senate"
	TimberCamp   = "timber_camp"
	Quarry       = "quarry"
	SilverMine   = "silver_mine"
	Warehouse    = "warehouse"
	Farm         = "farm"
	Market       = "market"
	Hospital     = "hospital"
	Barracks     = "barracks"
	Shipyard     = "shipyard"
	DivineTemple = "divine_temple"
	Academy      = "academy"
	Temple       = "temple"
	Cave         = "cave"
)

type Cost struct {
	Wood       int64 `json:"wood"`
	Stone      int64 `json:"stone"`
	Silver     int64 `json:"silver"`
	Population int64 `json:"population"`
}

type Requirement struct {
	Building string `json:"building,omitempty"`
	Level    int    `json:"level,omitempty"`
	Research string `json:"research,omitempty"`
}

type Building struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	MaxLevel int    `json:"max_level"`

	// 升级到 L 级的成本 = base × growth^(L-1)，向下取整。
	BaseCost   Cost    `json:"base_cost"`
	CostGrowth float64 `json:"cost_growth"`
	BaseTimeS  int64   `json:"base_time_s"`
	TimeGrowth float64 `json:"time_growth"`

	// 生产类建筑：产出资源与基础速率（每小时，1 级、0 工人）。
	Produces   string  `json:"produces,omitempty"`
	BaseRate   float64 `json:"base_rate,omitempty"`
	RateGrowth float64 `json:"rate_growth,omitempty"`
	// 每级开放的工人位数量。
	WorkerSlotsPerLevel int `json:"worker_slots_per_level,omitempty"`

	// 容量类建筑（仓库/农场/市场/医院）：容量 = base × growth^(L-1)。
	BaseCapacity   int64   `json:"base_capacity,omitempty"`
	CapacityGrowth float64 `json:"capacity_growth,omitempty"`

	Requires []Requirement `json:"requires,omitempty"`
}

type Table struct {
	byID map[string]*Building
}

func NewTable(items []Building) *Table {
	t := &Table{byID: make(map[string]*Building, len(items))}
	for i := range items {
		b := items[i]
		t.byID[b.ID] = &b
	}
	return t
}

func (t *Table) Get(id string) (*Building, bool) {
	if t == nil {
		return nil, false
	}
	b, ok := t.byID[id]
	return b, ok
}

func (t *Table) All() []*Building {
	out := make([]*Building, 0, len(t.byID))
	for _, b := range t.byID {
		out = append(out, b)
	}
	return out
}

var Conf = &Table{}

// Load 从数值表目录读入 Building.json。配置缺失属于部署错误，直接 panic。
func Load(dir string) {
	path := filepath.Join(dir, buildingFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("load Building config failed: read %q: %w", path, err))
	}

	var file struct {
		List []Building `json:"list"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		panic(fmt.Errorf("load Building config failed: unmarshal %q: %w", path, err))
	}
	if len(file.List) == 0 {
		panic(fmt.Errorf("load Building config failed: empty list in %q", path))
	}

	next := NewTable(file.List)
	for _, b := range next.byID {
		if b.MaxLevel <= 0 || b.CostGrowth <= 0 {
			panic(fmt.Errorf("load Building config failed: invalid entry id=%q", b.ID))
		}
	}
	*Conf = *next
}
