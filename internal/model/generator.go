package model

import (
	"fmt"
	"math/rand/v2"
)

// Shape of the placeholder data set.
const (
	RecordCount    = 4
	MinDetails     = 1
	MaxDetails     = 4
	MaxDetailCount = 10
)

// Generator builds placeholder records. It is not safe for concurrent use;
// the client calls it from a single operation at a time.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from src. A nil src uses a
// randomly seeded PCG source.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{rng: rand.New(src)}
}

// Records returns RecordCount freshly generated records named
// "Record 1" .. "Record N".
func (g *Generator) Records() []*Record {
	records := make([]*Record, 0, RecordCount)
	for n := 1; n <= RecordCount; n++ {
		record := NewRecord(fmt.Sprintf("Record %d", n))
		details := MinDetails + g.rng.IntN(MaxDetails-MinDetails+1)
		for k := 1; k <= details; k++ {
			record.Insert(NewDetail(g.rng.IntN(MaxDetailCount+1), fmt.Sprintf("Detail number %d", k)))
		}
		records = append(records, record)
	}
	return records
}
