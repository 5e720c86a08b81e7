// Package identity bridges the external identity provider's sessions to the
// hosted data store's row-level authorization: it derives stable internal row
// keys from opaque external user ids, fetches policy-scoped session tokens,
// builds HTTP clients that attach those tokens per request, and sequences the
// whole handshake as an observable state machine.
package identity

import "github.com/google/uuid"

// externalIDNamespace is the fixed UUID v5 namespace for deriving internal
// user ids from external identity-provider ids. It must never change: every
// profiles/subscribers/websites row is keyed by the derived id, and a new
// namespace would orphan all of them.
var externalIDNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// MapToInternalID converts an opaque external user id into the internal UUID
// used as the row key for that user. The mapping is pure and total:
//
//   - empty input returns (uuid.Nil, false), meaning "no identity yet";
//   - input already in canonical UUID form passes through unchanged;
//   - anything else is hashed into a UUID v5 under a fixed namespace.
//
// Same input always yields the same output, across calls and across process
// restarts.
func MapToInternalID(externalID string) (uuid.UUID, bool) {
	if externalID == "" {
		return uuid.Nil, false
	}

	if id, err := uuid.Parse(externalID); err == nil && isCanonicalForm(externalID) {
		return id, true
	}

	return uuid.NewSHA1(externalIDNamespace, []byte(externalID)), true
}

// isCanonicalForm reports whether s is in the 8-4-4-4-12 textual UUID shape.
// uuid.Parse also accepts urn: prefixes, braces and bare hex; those are not
// pass-through forms, they get hashed like any other opaque id.
func isCanonicalForm(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range s {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isHexDigit(c) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
