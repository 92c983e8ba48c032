// Package broadcast provides type-safe in-process fan-out of messages to
// subscribers.
//
// Messages carry an optional topic. Subscribers created with WithTopic only
// receive messages for that topic, which lets one broadcaster serve many
// independent streams (one per client session, for example).
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster[string](10)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx, broadcast.WithTopic("session-1"))
//	defer sub.Close()
//
//	b.Broadcast(ctx, broadcast.Message[string]{Topic: "session-1", Data: "hello"})
//
//	for msg := range sub.Receive(ctx) {
//		fmt.Println(msg.Data)
//	}
//
// The memory implementation removes a subscriber when its context is
// cancelled, when its buffer is full (slow consumers are dropped) and when
// the broadcaster is closed.
package broadcast
