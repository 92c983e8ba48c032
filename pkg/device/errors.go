package device

import "errors"

// ErrInvalidDescriptor is wrapped by every violation Descriptor.Validate reports.
var ErrInvalidDescriptor = errors.New("device: invalid descriptor")
