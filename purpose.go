package modhttp

// Purpose selects which size cap applies to a request.
type Purpose int

const (
	// PurposeNormal is used for metadata and other small responses.
	PurposeNormal Purpose = iota
	// PurposeModUpdate is used when fetching mod files and archives.
	PurposeModUpdate
)

func (p Purpose) String() string {
	switch p {
	case PurposeNormal:
		return "normal"
	case PurposeModUpdate:
		return "mod_update"
	default:
		return "unknown"
	}
}
