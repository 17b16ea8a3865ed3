package research

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const researchFile = "Research.json"

type Cost struct {
	Wood   int64 `json:"wood"`
	Stone  int64 `json:"stone"`
	Silver int64 `json:"silver"`
	// 研究点由学院等级决定，消耗后不返还。
	Points int `json:"points"`
}

type Requirement struct {
	Building string `json:"building,omitempty"`
	Level    int    `json:"level,omitempty"`
	Research string `json:"research,omitempty"`
}

type Research struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Cost     Cost          `json:"cost"`
	TimeS    int64         `json:"time_s"`
	Requires []Requirement `json:"requires,omitempty"`
}

type Table struct {
	byID map[string]*Research
}

func NewTable(items []Research) *Table {
	t := &Table{byID: make(map[string]*Research, len(items))}
	for i := range items {
		r := items[i]
		t.byID[r.ID] = &r
	}
	return t
}

func (t *Table) Get(id string) (*Research, bool) {
	if t == nil {
		return nil, false
	}
	r, ok := t.byID[id]
	return r, ok
}

var Conf = &Table{}

func Load(dir string) {
	path := filepath.Join(dir, researchFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("load Research config failed: read %q: %w", path, err))
	}

	var file struct {
		List []Research `json:"list"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		panic(fmt.Errorf("load Research config failed: unmarshal %q: %w", path, err))
	}
	if len(file.List) == 0 {
		panic(fmt.Errorf("load Research config failed: empty list in %q", path))
	}
	*Conf = *NewTable(file.List)
}
