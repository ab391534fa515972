// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ActionType is the type of an action.
type ActionType uint64

const (
	// ActionTypeUnknown represents an unknown action type.
	ActionTypeUnknown ActionType = 0

	// ActionTypeCreateAccount creates the receiver account.
	ActionTypeCreateAccount ActionType = 1

	// ActionTypeDeployContract deploys a contract to the receiver account.
	ActionTypeDeployContract ActionType = 2

	// ActionTypeTransfer credits the receiver's refundable balance.
	ActionTypeTransfer ActionType = 3

	// ActionTypeNonrefundableStorageTransfer credits the receiver's
	// non-refundable balance.
	ActionTypeNonrefundableStorageTransfer ActionType = 4

	// ActionTypeAddKey registers an access key on the receiver account.
	ActionTypeAddKey ActionType = 5

	// ActionTypeDeleteAccount deletes the receiver account.
	ActionTypeDeleteAccount ActionType = 6
)

// ActionTypeByName returns the action type with the given name.
func ActionTypeByName(name string) (ActionType, bool) {
	switch name {
	case "createAccount":
		return ActionTypeCreateAccount, true
	case "deployContract":
		return ActionTypeDeployContract, true
	case "transfer":
		return ActionTypeTransfer, true
	case "nonrefundableStorageTransfer":
		return ActionTypeNonrefundableStorageTransfer, true
	case "addKey":
		return ActionTypeAddKey, true
	case "deleteAccount":
		return ActionTypeDeleteAccount, true
	default:
		return ActionTypeUnknown, false
	}
}

// String returns the name of the action type.
func (t ActionType) String() string {
	switch t {
	case ActionTypeCreateAccount:
		return "createAccount"
	case ActionTypeDeployContract:
		return "deployContract"
	case ActionTypeTransfer:
		return "transfer"
	case ActionTypeNonrefundableStorageTransfer:
		return "nonrefundableStorageTransfer"
	case ActionTypeAddKey:
		return "addKey"
	case ActionTypeDeleteAccount:
		return "deleteAccount"
	default:
		return fmt.Sprintf("ActionType:%d", uint64(t))
	}
}

// IsTransfer checks if the action type moves value into the receiver's
// balances.
func (t ActionType) IsTransfer() bool {
	return t == ActionTypeTransfer || t == ActionTypeNonrefundableStorageTransfer
}

func (t ActionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ActionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		u, ok := ActionTypeByName(s)
		if !ok {
			return fmt.Errorf("invalid action type %q", s)
		}
		*t = u
		return nil
	}

	u, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid action type %q", data)
	}
	*t = ActionType(u)
	return nil
}
