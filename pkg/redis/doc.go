// Package redis connects to the optional Redis server that session events
// are published to (see events.RedisSink) and checks its health.
package redis
