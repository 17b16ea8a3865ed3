package unit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const unitFile = "Unit.json"

// 兵种大类决定训练建筑与行军修正：
// land → 兵营，naval → 船坞，mythic → 神庙。
const (
	KindLand   = "land"
	KindNaval  = "naval"
	KindMythic = "mythic"
)

// 建城移民的固定兵种 id：殖民派遣必须至少带一个。
const Villager = "villager"

type Cost struct {
	Wood   int64 `json:"wood"`
	Stone  int64 `json:"stone"`
	Silver int64 `json:"silver"`
	Favor  int64 `json:"favor,omitempty"`
}

type Unit struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Speed      float64 `json:"speed"`
	Population int64   `json:"population"`
	Cost       Cost    `json:"cost"`
	TrainTimeS int64   `json:"train_time_s"`

	// 运输船的运力（按陆军人口计）；
	// Flying 的陆军自行跨岛，不占运力。
	TransportCap int64 `json:"transport_cap,omitempty"`
	Flying       bool  `json:"flying,omitempty"`

	// mythic 兵种归属的神，训练消耗该神的信仰值。
	God string `json:"god,omitempty"`
}

type Table struct {
	byID map[string]*Unit
}

func NewTable(items []Unit) *Table {
	t := &Table{byID: make(map[string]*Unit, len(items))}
	for i := range items {
		u := items[i]
		t.byID[u.ID] = &u
	}
	return t
}

func (t *Table) Get(id string) (*Unit, bool) {
	if t == nil {
		return nil, false
	}
	u, ok := t.byID[id]
	return u, ok
}

func (t *Table) All() []*Unit {
	out := make([]*Unit, 0, len(t.byID))
	for _, u := range t.byID {
		out = append(out, u)
	}
	return out
}

var Conf = &Table{}

func Load(dir string) {
	path := filepath.Join(dir, unitFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("load Unit config failed: read %q: %w", path, err))
	}

	var file struct {
		List []Unit `json:"list"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		panic(fmt.Errorf("load Unit config failed: unmarshal %q: %w", path, err))
	}
	if len(file.List) == 0 {
		panic(fmt.Errorf("load Unit config failed: empty list in %q", path))
	}
	for _, u := range file.List {
		switch u.Kind {
		case KindLand, KindNaval, KindMythic:
		default:
			panic(fmt.Errorf("load Unit config failed: unknown kind %q id=%q", u.Kind, u.ID))
		}
	}
	*Conf = *NewTable(file.List)
}
