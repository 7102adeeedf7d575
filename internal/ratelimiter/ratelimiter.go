package ratelimiter

import "time"

type Limiter interface {
	// Allow records a request from key and reports whether it may proceed,
	// and if not, how long until it may retry.
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
