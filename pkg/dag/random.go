package dag

import "math/rand/v2"

// RandomRecords generates n valid records whose references are drawn
// uniformly from [1, id-1]. Timestamps increase by a random step of 0-4 per
// record, so later records tend to be newer with occasional ties.
//
// The output is fully determined by seed.
func RandomRecords(n int, seed uint64) []Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := make([]Record, n)
	var ts int64
	for i := range records {
		id := i + FirstRecordID
		ts += rng.Int64N(5)
		records[i] = Record{
			ID:        id,
			Left:      1 + rng.IntN(id-1),
			Right:     1 + rng.IntN(id-1),
			Timestamp: ts,
		}
	}
	return records
}
