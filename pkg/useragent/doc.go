// Package useragent classifies a client from its user agent, platform string
// and touch capability.
//
// Classification runs three independent rule chains: operating system,
// browser and device. Each chain is an ordered table of named rules pairing a
// predicate with an extractor; the first predicate that matches wins and a
// terminal default makes every chain total. Rule names are exported through
// OSRules, BrowserRules and DeviceRules so the ordering can be audited and
// tested.
//
// Ordering matters. Edge and Opera carry a Chrome token, Chrome carries a
// Safari token, and iPads in desktop mode report a Mac user agent with the
// MacIntel platform. The chains resolve these with explicit exclusion
// clauses and by placing the more specific rule first.
//
// Brand and model come from an embedded YAML table of brand patterns, model
// capture patterns and Pixel codenames, followed by the generic Android
// model token.
//
// Basic usage:
//
//	s := signals.Read(signals.FromRequest(r))
//	c := useragent.Classify(s)
//	fmt.Println(c.OS.Name, c.Browser.Name, c.Device.Type)
//
// A Classifier adds an LRU of results for hosts that see the same user
// agents repeatedly:
//
//	cl := useragent.NewClassifier(useragent.WithCache(4096))
//	c := cl.Classify(s)
package useragent
