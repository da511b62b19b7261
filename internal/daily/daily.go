// Package daily maps calendar days onto positions in a word list.
//
// Every client sharing the salt resolves the same UTC day to the same index,
// without any coordination or stored schedule.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey formats t as its UTC calendar day (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// WordIndex is the list position for the day containing at.
// An empty list always yields 0.
func WordIndex(at time.Time, salt string, listLen int) int {
	if listLen <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(at)))

	var digest [sha256.Size]byte
	mac.Sum(digest[:0])
	return int(binary.BigEndian.Uint64(digest[:8]) % uint64(listLen))
}
