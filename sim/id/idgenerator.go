// Package id generates unique IDs for events and transactions.
package id

import (
	"strconv"
	"sync/atomic"
)

var nextID uint64

// Generate returns an ID that is unique within the current process. IDs are
// sequential so that traces stay human readable.
func Generate() string {
	n := atomic.AddUint64(&nextID, 1)
	return strconv.FormatUint(n, 10)
}
