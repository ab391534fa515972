// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"fmt"
	"math/big"
)

// Fee is the cost of an action in base units.
type Fee uint64

func (n Fee) AsUInt64() uint64 {
	return uint64(n)
}

func (n Fee) AsBigInt() *big.Int {
	return new(big.Int).SetUint64(uint64(n))
}

// ContractCodeSizeMax is the largest contract that can be deployed.
const ContractCodeSizeMax = 1 << 22 // 4 MiB

// Fee Schedule
const (
	// FeeCreateAccount is charged for creating an account.
	FeeCreateAccount Fee = 1_000_000_000_000_000

	// FeeAddKey is charged for registering an access key.
	FeeAddKey Fee = 200_000_000_000_000

	// FeeTransfer is charged for a transfer.
	FeeTransfer Fee = 500_000_000_000_000

	// FeeNonrefundableStorageTransfer is charged for a non-refundable
	// storage transfer.
	FeeNonrefundableStorageTransfer Fee = 500_000_000_000_000

	// FeeDeployContractBase is charged for deploying a contract, plus
	// FeeDeployContractChunk per 256 bytes of code.
	FeeDeployContractBase Fee = 2_000_000_000_000_000

	// FeeDeployContractChunk is charged per 256 bytes of contract code.
	FeeDeployContractChunk Fee = 10_000_000_000_000

	// FeeDeleteAccount is charged for deleting an account. Deletion pays the
	// account's remaining refundable balance to the beneficiary, so the net
	// payout is the balance minus this fee.
	FeeDeleteAccount Fee = 1_000_000_000_000_000
)

// BaseActionFee returns the fixed portion of an action's fee.
func BaseActionFee(typ ActionType) (Fee, error) {
	switch typ {
	case ActionTypeCreateAccount:
		return FeeCreateAccount, nil
	case ActionTypeAddKey:
		return FeeAddKey, nil
	case ActionTypeTransfer:
		return FeeTransfer, nil
	case ActionTypeNonrefundableStorageTransfer:
		return FeeNonrefundableStorageTransfer, nil
	case ActionTypeDeployContract:
		return FeeDeployContractBase, nil
	case ActionTypeDeleteAccount:
		return FeeDeleteAccount, nil
	default:
		// Every action must have a defined fee amount, even if it's zero
		return 0, fmt.Errorf("unknown action type: %v", typ)
	}
}

// ComputeActionFee returns the full fee of an action.
func ComputeActionFee(action Action) (Fee, error) {
	fee, err := BaseActionFee(action.Type())
	if err != nil {
		return 0, err
	}

	deploy, ok := action.(*DeployContract)
	if !ok {
		return fee, nil
	}

	size := len(deploy.Code)
	if size > ContractCodeSizeMax {
		return 0, fmt.Errorf("contract code exceeds %v byte limit", ContractCodeSizeMax)
	}

	// Charge per 256 byte chunk of code
	count := size / 256
	if size%256 != 0 {
		count++
	}
	return fee + FeeDeployContractChunk*Fee(count), nil
}

// ComputeTransactionFee returns the fee the signer pays for the transaction.
func ComputeTransactionFee(txn *Transaction) (Fee, error) {
	var total Fee
	for _, action := range txn.Actions {
		fee, err := ComputeActionFee(action)
		if err != nil {
			return 0, err
		}
		total += fee
	}
	return total, nil
}
