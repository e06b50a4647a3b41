package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks answer-cache backend availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
