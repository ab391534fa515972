// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status is a request status code.
type Status uint64

const (
	// OK means the request completed.
	OK Status = 200
	// Delivered means the transaction has been delivered.
	Delivered Status = 201
	// Pending means the transaction is pending.
	Pending Status = 202

	// BadRequest means the request was invalid.
	BadRequest Status = 400
	// Unauthenticated means the signature could not be validated.
	Unauthenticated Status = 401
	// InsufficientBalance means the account's spendable balance does not
	// cover the deposits plus fees.
	InsufficientBalance Status = 402
	// Unauthorized means the signer is not authorized to act for the account.
	Unauthorized Status = 403
	// NotFound means a record could not be found.
	NotFound Status = 404
	// NotAllowed means the requested action is not allowed.
	NotAllowed Status = 405
	// Conflict means the request conflicts with the current state.
	Conflict Status = 409
	// BadNonce means the transaction nonce is not after the signer's.
	BadNonce Status = 411
	// InvalidAccountID means an account identifier is malformed.
	InvalidAccountID Status = 412
	// AccountExists means the account to be created already exists.
	AccountExists Status = 413
	// NonrefundableToExisting means a non-refundable deposit targeted an
	// account that already exists.
	NonrefundableToExisting Status = 414
	// UnsupportedFeature means the transaction uses a protocol feature that
	// is not active at the current protocol version.
	UnsupportedFeature Status = 415
	// BalanceOverflow means a credit would push a balance past the cap.
	BalanceOverflow Status = 416

	// UnknownError means the error is unknown.
	UnknownError Status = 500
	// EncodingError means encoding or decoding failed.
	EncodingError Status = 501
	// FatalError means something has gone seriously wrong.
	FatalError Status = 502
	// NotReady means the component is not ready.
	NotReady Status = 503
)

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// IsClientError returns true if the status is a client error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

// Error implements error.
func (s Status) Error() string { return s.String() }

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Delivered:
		return "delivered"
	case Pending:
		return "pending"
	case BadRequest:
		return "badRequest"
	case Unauthenticated:
		return "unauthenticated"
	case InsufficientBalance:
		return "insufficientBalance"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "notFound"
	case NotAllowed:
		return "notAllowed"
	case Conflict:
		return "conflict"
	case BadNonce:
		return "badNonce"
	case InvalidAccountID:
		return "invalidAccountId"
	case AccountExists:
		return "accountExists"
	case NonrefundableToExisting:
		return "nonrefundableToExisting"
	case UnsupportedFeature:
		return "unsupportedFeature"
	case BalanceOverflow:
		return "balanceOverflow"
	case UnknownError:
		return "unknownError"
	case EncodingError:
		return "encodingError"
	case FatalError:
		return "fatalError"
	case NotReady:
		return "notReady"
	default:
		return fmt.Sprintf("Status:%d", uint64(s))
	}
}

// StatusByName returns the status with the given name, or zero.
func StatusByName(name string) (Status, bool) {
	switch strings.ToLower(name) {
	case "ok":
		return OK, true
	case "delivered":
		return Delivered, true
	case "pending":
		return Pending, true
	case "badrequest":
		return BadRequest, true
	case "unauthenticated":
		return Unauthenticated, true
	case "insufficientbalance":
		return InsufficientBalance, true
	case "unauthorized":
		return Unauthorized, true
	case "notfound":
		return NotFound, true
	case "notallowed":
		return NotAllowed, true
	case "conflict":
		return Conflict, true
	case "badnonce":
		return BadNonce, true
	case "invalidaccountid":
		return InvalidAccountID, true
	case "accountexists":
		return AccountExists, true
	case "nonrefundabletoexisting":
		return NonrefundableToExisting, true
	case "unsupportedfeature":
		return UnsupportedFeature, true
	case "balanceoverflow":
		return BalanceOverflow, true
	case "unknownerror":
		return UnknownError, true
	case "encodingerror":
		return EncodingError, true
	case "fatalerror":
		return FatalError, true
	case "notready":
		return NotReady, true
	default:
		return 0, false
	}
}

// MarshalJSON marshals the status as a string.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON unmarshals the status from a string or a number.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, ok := StatusByName(str); ok {
			*s = v
			return nil
		}
		if n, err := strconv.ParseUint(str, 10, 64); err == nil {
			*s = Status(n)
			return nil
		}
		return fmt.Errorf("%q is not a valid status", str)
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = Status(n)
	return nil
}
