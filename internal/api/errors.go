// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"github.com/AccumulateNetwork/jsonrpc2/v15"

	"gitlab.com/meridiannetwork/meridian/pkg/errors"
)

const (
	ErrCodeInternal jsonrpc2.ErrorCode = -32800 - iota
	ErrCodeDispatch
	ErrCodeValidation
	ErrCodeSubmission
	ErrCodeNotFound
)

// ErrCodeProtocolBase is the base for errors forwarded from the protocol. A
// protocol status is reported as ErrCodeProtocolBase minus the status, so
// NotFound (404) becomes -33404.
const ErrCodeProtocolBase jsonrpc2.ErrorCode = -33000

func validatorError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeValidation, "Validation Error", err)
}

func internalError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeInternal, "Internal Error", err)
}

// protocolError converts an error from the executor into a JSON-RPC error.
func protocolError(err error) jsonrpc2.Error {
	perr, ok := errors.UnknownError.Wrap(err).(*errors.Error)
	if ok && perr.Code.IsKnownError() {
		return jsonrpc2.NewError(ErrCodeProtocolBase-jsonrpc2.ErrorCode(perr.Code), "Meridian Error", perr.Message)
	}

	var jerr jsonrpc2.Error
	if errors.As(err, &jerr) {
		return jerr
	}

	return jsonrpc2.NewError(ErrCodeInternal, "Meridian Error", err)
}
