// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

const (
	// AccountIDMinLength is the shortest allowed account ID.
	AccountIDMinLength = 2

	// AccountIDMaxLength is the longest allowed account ID.
	AccountIDMaxLength = 64

	// implicitIDLength is the length of a key-derived account ID.
	implicitIDLength = 64

	// ethImplicitIDLength is the length of an address-style account ID,
	// including the 0x prefix.
	ethImplicitIDLength = 42
)

// AccountID is the identifier of an account. An account ID is either a
// human-readable name, such as `alice` or `market.alice`, or an implicit
// identifier derived from a public key.
type AccountID string

// ParseAccountID validates s and returns it as an account ID.
func ParseAccountID(s string) (AccountID, error) {
	if err := IsValidAccountID(s); err != nil {
		return "", err
	}
	return AccountID(s), nil
}

// IsValidAccountID returns an error if the string is not a well formed
// account ID.
//
// An account ID:
// 1) Must be 2 to 64 characters.
// 2) May contain lowercase letters, digits, and the separators '.', '-',
//    and '_'.
// 3) Must begin and end with a letter or digit.
// 4) Must not contain two separators in a row.
func IsValidAccountID(s string) error {
	var errs []string

	if len(s) < AccountIDMinLength {
		errs = append(errs, "too short")
	}
	if len(s) > AccountIDMaxLength {
		errs = append(errs, "too long")
	}

	var leadingSep, adjacentSep, trailingSep bool
	var prevSep bool
	seen := map[rune]bool{}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			prevSep = false

		case r == '.' || r == '-' || r == '_':
			if i == 0 {
				leadingSep = true
			} else if prevSep {
				adjacentSep = true
			}
			prevSep = true

		default:
			if !seen[r] {
				seen[r] = true
				errs = append(errs, fmt.Sprintf("illegal character %q", r))
			}
			prevSep = false
		}
	}
	trailingSep = prevSep

	if leadingSep {
		errs = append(errs, "starts with a separator")
	}
	if adjacentSep {
		errs = append(errs, "adjacent separators")
	}
	if trailingSep {
		errs = append(errs, "ends with a separator")
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.InvalidAccountID.WithFormat("invalid account ID %q: %s", s, strings.Join(errs, ", "))
}

func (id AccountID) String() string { return string(id) }

// IsImplicit checks if the ID is derived from an ed25519 public key. An
// implicit account is created by the first successful transfer to its ID
// rather than by an explicit creation action.
func (id AccountID) IsImplicit() bool {
	return len(id) == implicitIDLength && isLowerHex(string(id))
}

// IsEthImplicit checks if the ID is an address-style implicit identifier,
// `0x` followed by 40 hexadecimal digits.
func (id AccountID) IsEthImplicit() bool {
	return len(id) == ethImplicitIDLength &&
		strings.HasPrefix(string(id), "0x") &&
		isLowerHex(string(id)[2:])
}

// IsNamed checks if the ID is a human-readable name.
func (id AccountID) IsNamed() bool {
	return !id.IsImplicit() && !id.IsEthImplicit()
}

// ImplicitAccountID derives the implicit account ID of an ed25519 public
// key.
func ImplicitAccountID(key PublicKey) AccountID {
	return AccountID(hex.EncodeToString(key))
}

// EthImplicitAccountID derives the address-style implicit account ID of a
// public key, `0x` followed by the last 20 bytes of the key's SHA-256 hash.
// No key can be recovered from an address-style ID, so unlike a key-derived
// ID it does not register an access key when the account is created.
func EthImplicitAccountID(key PublicKey) AccountID {
	hash := sha256.Sum256(key)
	return AccountID("0x" + hex.EncodeToString(hash[len(hash)-20:]))
}

func isLowerHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return len(s) > 0
}
