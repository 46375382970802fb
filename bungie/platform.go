package bungie

import "strconv"

// MembershipType identifies the platform a Destiny account lives on.
type MembershipType int

// Membership types understood by the Bungie API.
const (
	MembershipTypeNone  MembershipType = 0
	MembershipTypeXbox  MembershipType = 1
	MembershipTypePSN   MembershipType = 2
	MembershipTypeSteam MembershipType = 3

	// MembershipTypeAll is only valid for player search; the API treats it
	// as "search every platform". Never use it for profile or stats calls.
	MembershipTypeAll MembershipType = -1
)

// MembershipTypeFromCode maps a raw platform code to a MembershipType.
// Unknown codes normalize to MembershipTypeNone rather than failing, since
// the API occasionally reports retired or cross-save platform codes.
func MembershipTypeFromCode(code int) MembershipType {
	switch MembershipType(code) {
	case MembershipTypeXbox, MembershipTypePSN, MembershipTypeSteam, MembershipTypeAll:
		return MembershipType(code)
	default:
		return MembershipTypeNone
	}
}

// MembershipTypeFromName parses a platform name as used on the command line.
// Unrecognized names normalize to MembershipTypeNone.
func MembershipTypeFromName(name string) MembershipType {
	switch name {
	case "xbox":
		return MembershipTypeXbox
	case "psn", "playstation":
		return MembershipTypePSN
	case "steam":
		return MembershipTypeSteam
	case "all":
		return MembershipTypeAll
	default:
		return MembershipTypeNone
	}
}

// Code returns the raw platform code as the API expects it in URL paths.
func (m MembershipType) Code() string {
	return strconv.Itoa(int(m))
}

// DisplayName returns a human-readable platform name for the three named
// platforms, and an empty string for everything else.
func (m MembershipType) DisplayName() string {
	switch m {
	case MembershipTypeXbox:
		return "Xbox"
	case MembershipTypePSN:
		return "PlayStation"
	case MembershipTypeSteam:
		return "Steam"
	default:
		return ""
	}
}
