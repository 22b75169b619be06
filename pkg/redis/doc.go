// Package redis provides helpers for connecting to a Redis server used as a
// low-latency preference cache in front of the relational store.
//
// The package wraps the go-redis client and adds a Connect function that
// retries the connection using the supplied configuration, plus a
// healthcheck closure for liveness and readiness probes.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0", RetryAttempts: 3}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
package redis
