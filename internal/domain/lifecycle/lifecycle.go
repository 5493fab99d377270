// Package lifecycle defines shared start/stop budgets for long-lived components.
package lifecycle

import "time"

// DefaultTimeout bounds OnStart/OnStop hooks.
const DefaultTimeout = 10 * time.Second
