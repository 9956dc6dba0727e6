package index

import (
	"encoding/binary"
	"math"
	"time"
)

func makeSeqKey(seq int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(seq))
	return k
}

// key = invTime(8) + seq(8); newest first, ties in discovery order.
// The sign bit is flipped before inverting so pre-1970 dates keep their
// place. Undated posts take the maximum key and sort last.
func makePublishedKey(published time.Time, seq int) []byte {
	inv := uint64(math.MaxUint64)
	if !published.IsZero() {
		inv = ^(uint64(published.UnixNano()) ^ 1<<63)
	}
	k := make([]byte, 16)
	binary.BigEndian.PutUint64(k[:8], inv)
	binary.BigEndian.PutUint64(k[8:], uint64(seq))
	return k
}
