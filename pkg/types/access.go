package types

// Access is the access mode in effect for an operation. The same mode
// set serves every operation; individual operations document which
// modes they accept.
type Access int

// Access modes.
const (
	// AccessRead requests existing data.
	AccessRead Access = iota
	// AccessWrite requests publishing new data.
	AccessWrite
	// AccessCreateRelated requests publishing data related to the
	// referenced entity rather than a new version of it.
	AccessCreateRelated
	// AccessManagerDriven defers the choice of entity data to the
	// manager.
	AccessManagerDriven
)

// accessNames maps access modes to their display names.
var accessNames = map[Access]string{
	AccessRead:          "read",
	AccessWrite:         "write",
	AccessCreateRelated: "createRelated",
	AccessManagerDriven: "managerDriven",
}

// String returns the display name of the access mode.
func (a Access) String() string {
	if name, ok := accessNames[a]; ok {
		return name
	}
	return "unknown"
}
