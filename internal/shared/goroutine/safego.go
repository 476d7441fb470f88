// Package goroutine runs fire-and-forget work, such as purchase receipts, off
// the request path without letting a panic take the server down.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// SafeGo runs fn in its own goroutine. A panic is logged under name together
// with fields and swallowed. The returned channel closes once fn has returned
// or panicked.
func SafeGo(log logger.Interface, name string, fn func(), fields ...any) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				kv := append([]any{
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				}, fields...)
				log.Errorw("background task panicked", kv...)
			}
		}()
		fn()
	}()
	return done
}
