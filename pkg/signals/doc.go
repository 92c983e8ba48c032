// Package signals reads the ambient properties of a client host.
//
// A host exposes an identification string (user agent), a platform string,
// display geometry, touch and CPU counts, and optionally network hints, an
// orientation and an offscreen drawable. Any of them can be missing, so each
// one is modelled as an Optional in an Environment snapshot.
//
// Read turns a Source into Signals, substituting a documented default for
// every absent property:
//
//   - strings default to "" for the raw inputs and "unknown" for language
//     and connection fields;
//   - counts default to 0 and the pixel ratio to 1;
//   - orientation falls back to the viewport aspect ratio, then "unknown".
//
// Read never fails and never panics.
//
// Environments come from several places:
//
//	env := signals.FromRequest(r)      // User-Agent and client hints
//	env := report.Environment()        // JSON posted by a browser agent
//	env := signals.Local()             // the host running this process
//
// A Live source lets a long-running session observe updates:
//
//	live := signals.NewLive(env)
//	live.Update(func(e *signals.Environment) {
//	    e.Orientation = signals.Some("landscape-primary")
//	})
//	s := signals.Read(live)
package signals
