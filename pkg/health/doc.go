// Package health provides liveness and readiness probes.
//
// [LivenessHandler] always responds OK while the process runs.
// [ReadinessHandler] executes a set of [Checks] in parallel and responds
// 503 when any fails. [Run] executes the same checks outside HTTP.
//
// # Usage
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "hubspot_token": hubspot.Healthcheck(tokens),
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Plain text is returned by default. Request JSON with
// Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "hubspot_token": {"status": "unhealthy", "error": "...", "duration_ms": 120}
//	  }
//	}
package health
