// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a request validator that understands protocol types.
// Fields tagged `account-id` must be valid account identifiers.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("account-id", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			panic(fmt.Errorf("%q is not a string", fl.FieldName()))
		}

		s := fl.Field().String()
		if len(s) == 0 {
			// allow empty
			return true
		}

		return IsValidAccountID(s) == nil
	})
	return v, err
}
