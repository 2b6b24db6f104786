package deeplinkhandlers

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vitalvas/deeplinks/deeplink"
)

// ErrInvalidWindow is returned when DebounceConfig.Window is not greater
// than zero.
var ErrInvalidWindow = errors.New("debounce: window must be greater than zero")

// DebounceConfig configures the Debounce middleware behaviour.
type DebounceConfig struct {
	// Window is how long a dispatched link suppresses identical ones.
	// Must be greater than zero.
	Window time.Duration

	// Key identifies a link. Defaults to its Go type and %v formatting;
	// Router.ExportDeepLink is a good choice when every variant has an
	// export rule.
	Key func(deeplink.DeepLink) string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// DebounceMiddleware returns a middleware that drops a deep link when an
// identical one was dispatched less than Window ago. The router still
// reports a dropped link as handled, since a handler was selected for it.
//
// It returns ErrInvalidWindow if Window is not greater than zero.
func DebounceMiddleware(cfg DebounceConfig) (deeplink.MiddlewareFunc, error) {
	if cfg.Window <= 0 {
		return nil, ErrInvalidWindow
	}

	window := cfg.Window

	key := cfg.Key
	if key == nil {
		key = func(link deeplink.DeepLink) string {
			return fmt.Sprintf("%T:%v", link, link)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	var (
		mu   sync.Mutex
		seen = make(map[string]time.Time)
	)

	return func(next deeplink.HandlerFunc) deeplink.HandlerFunc {
		return func(link deeplink.DeepLink) {
			k := key(link)
			t := now()

			mu.Lock()
			for sk, at := range seen {
				if t.Sub(at) >= window {
					delete(seen, sk)
				}
			}
			_, duplicate := seen[k]
			if !duplicate {
				seen[k] = t
			}
			mu.Unlock()

			if duplicate {
				return
			}

			next(link)
		}
	}, nil
}
