package hasher

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

// SetLogger routes the package's diagnostic events (unreadable files, absent
// array entries) to l. Passing nil restores log.Default().
func SetLogger(l *log.Logger) {
	logger.Store(l)
}

func lg() *log.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return log.Default()
}
