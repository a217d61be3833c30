package presence

// Outcome is the result of a claim attempt. Outcomes are values, not errors.
type Outcome int

const (
	ClaimedNew Outcome = iota + 1
	AlreadyTaken
	AlreadyClaimedSame
	AlreadyClaimedOther
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case ClaimedNew:
		return "CLAIMED_NEW"
	case AlreadyTaken:
		return "ALREADY_TAKEN"
	case AlreadyClaimedSame:
		return "ALREADY_CLAIMED_SAME"
	case AlreadyClaimedOther:
		return "ALREADY_CLAIMED_OTHER"
	default:
		return "UNKNOWN"
	}
}

// OK reports whether the caller ends up holding the requested username.
func (o Outcome) OK() bool {
	return o == ClaimedNew || o == AlreadyClaimedSame
}

// Identity binds one client connection to a claimed username.
type Identity struct {
	Username  string
	SessionID string
}
