package god

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const godFile = "God.json"

// 法术效果类型（tagged union 的 tag）。
// 出现未知 type 时施法必须报错，不允许静默跳过。
const (
	EffectAddResources         = "add_resources"
	EffectAddMultipleResources = "add_multiple_resources"
	EffectDamageBuilding       = "damage_building"
	EffectBoostProduction      = "boost_production"
)

type Effect struct {
	Type string `json:"type"`
	// add_resources：单资源
	Resource string `json:"resource,omitempty"`
	Amount   int64  `json:"amount,omitempty"`
	// add_multiple_resources：多资源
	Resources map[string]int64 `json:"resources,omitempty"`
	// damage_building：目标建筑降级数
	Building string `json:"building,omitempty"`
	Levels   int    `json:"levels,omitempty"`
	// boost_production：生产加成百分比与时长
	Percent   int   `json:"percent,omitempty"`
	DurationS int64 `json:"duration_s,omitempty"`
}

type Spell struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	God       string `json:"god"`
	FavorCost int64  `json:"favor_cost"`
	Effect    Effect `json:"effect"`
}

type God struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// 信奉该神时每小时累积的信仰值（按神庙等级放大在经济层做）。
	FavorPerHour float64 `json:"favor_per_hour"`
}

type Table struct {
	gods   map[string]*God
	spells map[string]*Spell
}

func NewTable(gods []God, spells []Spell) *Table {
	t := &Table{
		gods:   make(map[string]*God, len(gods)),
		spells: make(map[string]*Spell, len(spells)),
	}
	for i := range gods {
		g := gods[i]
		t.gods[g.ID] = &g
	}
	for i := range spells {
		s := spells[i]
		t.spells[s.ID] = &s
	}
	return t
}

func (t *Table) God(id string) (*God, bool) {
	if t == nil {
		return nil, false
	}
	g, ok := t.gods[id]
	return g, ok
}

func (t *Table) Spell(id string) (*Spell, bool) {
	if t == nil {
		return nil, false
	}
	s, ok := t.spells[id]
	return s, ok
}

var Conf = &Table{}

func Load(dir string) {
	path := filepath.Join(dir, godFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("load God config failed: read %q: %w", path, err))
	}

	var file struct {
		Gods   []God   `json:"gods"`
		Spells []Spell `json:"spells"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		panic(fmt.Errorf("load God config failed: unmarshal %q: %w", path, err))
	}
	if len(file.Gods) == 0 {
		panic(fmt.Errorf("load God config failed: empty gods in %q", path))
	}
	next := NewTable(file.Gods, file.Spells)
	for _, s := range file.Spells {
		if _, ok := next.God(s.God); !ok {
			panic(fmt.Errorf("load God config failed: spell %q references unknown god %q", s.ID, s.God))
		}
	}
	*Conf = *next
}
