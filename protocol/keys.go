// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

// ed25519Prefix identifies the key type in the text form of a public key.
const ed25519Prefix = "ed25519:"

// PublicKey is an ed25519 public key. The text form is the key type followed
// by the base58 encoding of the key, for example
// `ed25519:BGCCDDHfysuuVnaNVtEhhqeT4k9Muyem3Kpgq2U1m9HX`.
type PublicKey []byte

// ParsePublicKey parses the text form of a public key.
func ParsePublicKey(s string) (PublicKey, error) {
	if !strings.HasPrefix(s, ed25519Prefix) {
		return nil, fmt.Errorf("invalid public key %q: missing %q prefix", s, ed25519Prefix)
	}

	key := base58.Decode(s[len(ed25519Prefix):])
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key %q: want %d bytes, got %d", s, ed25519.PublicKeySize, len(key))
	}
	return key, nil
}

func (k PublicKey) String() string {
	return ed25519Prefix + base58.Encode(k)
}

// Equal checks if the two keys are the same.
func (k PublicKey) Equal(l PublicKey) bool {
	return bytes.Equal(k, l)
}

func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PublicKey) UnmarshalText(text []byte) error {
	key, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// AccessKey is a credential authorized to sign transactions for an account.
type AccessKey struct {
	PublicKey PublicKey `json:"publicKey"`

	// Nonce is the sequence number of the last transaction signed with this
	// key. Transactions must carry a strictly larger nonce.
	Nonce uint64 `json:"nonce"`
}

// Copy returns a distinct copy of the access key.
func (k *AccessKey) Copy() *AccessKey {
	l := new(AccessKey)
	l.PublicKey = append(PublicKey(nil), k.PublicKey...)
	l.Nonce = k.Nonce
	return l
}
