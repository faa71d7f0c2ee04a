package server

import "context"

// Status is a point-in-time snapshot of the game server
type Status struct {
	Open          bool
	OnlinePlayers int64
	CurrentTime   string
}

// StatusProvider returns the server status, memoized per client session
type StatusProvider interface {
	ServerStatus(ctx context.Context) (*Status, error)
}
