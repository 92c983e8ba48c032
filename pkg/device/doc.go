// Package device assembles the device descriptor handed to remote hosts.
//
// A Session binds a signal source to a classifier and a memoized
// fingerprint. DeviceInfo reads the source, classifies the client and
// returns a fully populated Descriptor; absent signals degrade to their
// documented defaults and never cause a failure.
//
//	sess := device.NewSession(signals.Local())
//	d := sess.DeviceInfo()
//	fmt.Println(d.OS.Name, d.Device.Type, d.Fingerprint)
//
// The fingerprint is computed on the first DeviceInfo or Fingerprint call
// and reused for the lifetime of the session. All other fields are read
// again on every call.
package device
