package out

import "context"

// RateLimiter decides whether an inbound API request may proceed.
// Keys are "global" for the service-wide budget and "ip:<address>" per client.
type RateLimiter interface {
	Allow(ctx context.Context, key string) bool
}
