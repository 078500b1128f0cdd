package common

// SaleInfo is an immutable descriptor of a single sale. It is fixed when the
// auction contract is deployed and shared with the factory registry.
type SaleInfo struct {
	// Name is a human-readable sale label.
	Name string
	// EndBlock is the last block index at which bids are still accepted.
	EndBlock int
}
