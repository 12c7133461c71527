// Package health serves liveness and readiness probes for the nbspace server.
//
// Readiness runs every registered check concurrently under one timeout. The
// server registers the output storage and, when configured, the Redis memo
// store:
//
//	checks := health.Checks{}
//	checks.AddPinger("storage", store)
//	checks.AddPinger("memo", redisStore)
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithLogger(log)))
//
// Both handlers answer in plain text ("OK" or "Service Unavailable") unless
// the client asks for JSON with an Accept header or ?format=json.
package health
