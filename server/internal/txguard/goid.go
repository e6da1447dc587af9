package txguard

import (
	"runtime"
	"strconv"
	"strings"
)

// goroutineID extracts the numeric goroutine id from the runtime stack
// header. Only used on the assertion path, which is cheap enough for a guard
// that exists to catch programming errors.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(s, ' '); i > 0 {
		if id, err := strconv.ParseUint(s[:i], 10, 64); err == nil {
			return id
		}
	}
	return 0
}
