// Package resilience groups the fault tolerance helpers used by the API.
//
//   - circuitbreaker: gobreaker wrappers, including a guarded SQL executor
//     used by the repositories
//   - retry: exponential backoff with jitter, used for the startup database
//     ping and for change-event publishing
//
// Usage:
//
//	guarded := circuitbreaker.NewDBCircuitBreaker(db)
//	repos := postgres.NewRepos(guarded)
//
//	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
