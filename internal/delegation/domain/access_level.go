package domain

// AccessLevel is the permission scope of a delegation. Levels are totally ordered by
// capability: WRITE includes READ.
type AccessLevel string

const (
	// AccessLevelRead allows reading the shared entity.
	AccessLevelRead AccessLevel = "READ"

	// AccessLevelWrite allows reading and modifying the shared entity.
	// Root delegations always carry this level.
	AccessLevelWrite AccessLevel = "WRITE"
)

// Validate checks if the access level is known.
func (a AccessLevel) Validate() error {
	switch a {
	case AccessLevelRead, AccessLevelWrite:
		return nil
	default:
		return ErrInvalidAccessLevel
	}
}

// Includes reports whether a grants at least the capabilities of other.
func (a AccessLevel) Includes(other AccessLevel) bool {
	return a.rank() >= other.rank()
}

// String returns the string representation of the access level.
func (a AccessLevel) String() string {
	return string(a)
}

func (a AccessLevel) rank() int {
	switch a {
	case AccessLevelWrite:
		return 2
	case AccessLevelRead:
		return 1
	default:
		return 0
	}
}

// Widest returns the access level granting the most capabilities. Merges use it so that
// permissions are only ever widened, never narrowed.
func Widest(a, b AccessLevel) AccessLevel {
	if a.Includes(b) {
		return a
	}
	return b
}
