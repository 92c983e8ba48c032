// Package events implements the event exchange between a client session
// and the remote streaming host.
//
// A Detector wraps a device.Session. Connect activates detection and
// announces the client as mobile (phones and tablets) or desktop;
// RequestDeviceInfo answers a device-info request with a descriptor;
// Refresh reports orientation changes; Disconnect ends detection. While
// inactive, RequestDeviceInfo and Refresh return ErrNotConnected.
//
// Events go to sinks. BroadcastSink fans them out in-process through
// pkg/broadcast, tagged with the session ID as topic. RedisSink publishes
// them as JSON on a per-session go-redis channel:
//
//	sink := events.NewRedisSink(client, "devicekit:events")
//	det := events.NewDetector(id, sess, events.WithSinks(sink))
//	det.Connect(ctx)
//
// A failing sink is logged and does not stop delivery to the others.
package events
