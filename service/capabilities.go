package service

// Capabilities is the explicit capability configuration handed to the API
// layer at construction. Each flag's effect is decided here once; nothing
// else in the system consults feature configuration. Booking and calendar
// are always live and deliberately have no flag.
type Capabilities struct {
	Search  bool
	Reports bool
	Exports bool
}

// DefaultCapabilities leaves every optional surface off; deployments turn
// them on through configuration. Booking and calendar stay on either way.
func DefaultCapabilities() Capabilities {
	return Capabilities{}
}
