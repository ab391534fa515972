// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"crypto/ed25519"

	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// AddKey registers an access key on the receiver.
type AddKey struct{}

func (AddKey) Type() protocol.ActionType { return protocol.ActionTypeAddKey }

func (AddKey) Validate(action protocol.Action) error {
	body, ok := action.(*protocol.AddKey)
	if !ok {
		return errors.FatalError.WithFormat("invalid action: want %T, got %T", new(protocol.AddKey), action)
	}

	if len(body.PublicKey) != ed25519.PublicKeySize {
		return errors.BadRequest.WithFormat("invalid public key: want %d bytes, got %d", ed25519.PublicKeySize, len(body.PublicKey))
	}
	return nil
}

func (x AddKey) Execute(st *StateManager, action protocol.Action) error {
	err := x.Validate(action)
	if err != nil {
		return err
	}
	body := action.(*protocol.AddKey)

	if !st.Exists() {
		return &protocol.AccountDoesNotExist{AccountID: st.Receipt.ReceiverID}
	}
	if !st.ActorIsReceiver() {
		return errors.Unauthorized.WithFormat("%v cannot add a key to %v", st.Receipt.PredecessorID, st.Receipt.ReceiverID)
	}

	if !st.Receiver.AddKey(&protocol.AccessKey{PublicKey: body.PublicKey}) {
		return errors.Conflict.WithFormat("key %v is already registered to %v", body.PublicKey, st.Receipt.ReceiverID)
	}
	st.Receiver.StorageUsage += protocol.StorageBytesAccessKey
	return nil
}
