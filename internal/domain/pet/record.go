package pet

import "github.com/MRamiBalles/sdop/internal/domain/timestamp"

// HistorySize is the number of past pets kept.
const HistorySize = 20

// Record is a finished life.
type Record struct {
	UPID        UPID                `json:"upid"`
	DefID       DefID               `json:"def_id"`
	Name        string              `json:"name"`
	Parents     Parents             `json:"parents"`
	Born        timestamp.Timestamp `json:"born"`
	Died        timestamp.Timestamp `json:"died"`
	Cause       DeathCause          `json:"cause"`
	ExtraWeight float32             `json:"extra_weight"`
}

// History keeps the most recent records, oldest first.
type History struct {
	Records [HistorySize]Record `json:"records"`
	Len     uint8               `json:"len"`
}

// Push appends r, dropping the oldest entry when full.
func (h *History) Push(r Record) {
	if int(h.Len) < HistorySize {
		h.Records[h.Len] = r
		h.Len++
		return
	}
	copy(h.Records[:], h.Records[1:])
	h.Records[HistorySize-1] = r
}

func (h *History) All() []Record {
	return h.Records[:h.Len]
}
