package parameter

import "time"

// Spectator Feed
const (
	// FeedSendBuffer is the per-client outbound queue; messages are dropped when full
	FeedSendBuffer = 64

	// FeedRate is the sustained per-client message rate (messages/second)
	FeedRate = 120

	// FeedBurst is the per-client limiter burst
	FeedBurst = 240

	// FeedWriteTimeout bounds a single websocket write
	FeedWriteTimeout = 2 * time.Second

	// FeedReadLimit caps inbound frames; spectators only send control frames
	FeedReadLimit = 512
)
