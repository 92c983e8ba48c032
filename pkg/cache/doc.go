// Package cache provides a generic, thread-safe LRU cache.
//
// devicekit uses it in two places: memoizing classifier results per
// identification string, and bounding the number of live client sessions
// held by the HTTP API.
//
//	sessions := cache.New[string, *Session](1024,
//		cache.WithEvictCallback(func(id string, s *Session) {
//			s.Close()
//		}),
//	)
//	sessions.Put(id, s)
//	s, ok := sessions.Get(id)
//
// Get, Put and GetOrLoad mark an entry as recently used; Peek does not.
// The evict callback fires for capacity evictions and Clear, never for
// Remove, and always outside the internal lock.
package cache
