// Package health reports grid and forecast state as health checks for the
// gridsim HTTP endpoint.
package health

import (
	"time"
)

// NewChecker creates a Checker with no checks
func NewChecker() *Checker {
	return &Checker{
		checks:  make(map[string]CheckFunc),
		started: time.Now(),
	}
}

// Register adds or replaces the check called name
func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Check runs every registered check
func (c *Checker) Check() Response {
	c.mu.RLock()
	defer c.mu.RUnlock()

	uptime := time.Since(c.started)
	response := Response{
		Status:        StatusHealthy,
		Timestamp:     time.Now(),
		Checks:        make(map[string]Check, len(c.checks)),
		Uptime:        uptime,
		UptimeSeconds: int64(uptime / time.Second),
	}

	for name, checkFunc := range c.checks {
		start := time.Now()
		check := checkFunc()
		check.Name = name
		check.Duration = time.Since(start)
		check.DurationMs = check.Duration.Milliseconds()
		check.LastChecked = start

		response.Checks[name] = check
		response.Status = worse(response.Status, check.Status)
	}

	return response
}

func worse(a, b Status) Status {
	if a == StatusUnhealthy || b == StatusUnhealthy {
		return StatusUnhealthy
	}
	if a == StatusDegraded || b == StatusDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}
