package model

import (
	"strconv"

	"IslandKingdoms/internal/movement/domain"
)

// ReinforcementDoc 是驻防台账的落库形态。
// BSON 的 map 键必须是字符串，来源城 id 在这里转成十进制字符串。
type ReinforcementDoc struct {
	TargetCityID int64                                `bson:"_id"`
	Entries      map[string]domain.ReinforcementEntry `bson:"entries"`
}

func LedgerToDoc(l *domain.ReinforcementLedger) ReinforcementDoc {
	doc := ReinforcementDoc{
		TargetCityID: l.TargetCityID,
		Entries:      make(map[string]domain.ReinforcementEntry, len(l.Entries)),
	}
	for originID, e := range l.Entries {
		doc.Entries[strconv.FormatInt(originID, 10)] = e
	}
	return doc
}

func DocToLedger(doc ReinforcementDoc) *domain.ReinforcementLedger {
	l := &domain.ReinforcementLedger{
		TargetCityID: doc.TargetCityID,
		Entries:      make(map[int64]domain.ReinforcementEntry, len(doc.Entries)),
	}
	for key, e := range doc.Entries {
		originID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		l.Entries[originID] = e
	}
	return l
}
