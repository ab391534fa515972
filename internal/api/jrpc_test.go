// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/require"
	meridian "gitlab.com/meridiannetwork/meridian"
	"gitlab.com/meridiannetwork/meridian/config"
	. "gitlab.com/meridiannetwork/meridian/internal/api"
	"gitlab.com/meridiannetwork/meridian/internal/chain"
	"gitlab.com/meridiannetwork/meridian/internal/database"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	mertesting "gitlab.com/meridiannetwork/meridian/internal/testing"
	"gitlab.com/meridiannetwork/meridian/pkg/errors"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

const (
	senderID   = "test0"
	receiverID = "test1"
)

var (
	senderKey   = mertesting.PubKey(mertesting.GenerateKey(senderID))
	receiverKey = mertesting.PubKey(mertesting.GenerateKey(receiverID))
)

// setupJrpc returns a JSON-RPC service over a fresh executor with test0 and
// test1 each holding a million MER.
func setupJrpc(t *testing.T) *JrpcMethods {
	t.Helper()

	logger := logging.NewTestLogger(t)
	db := database.OpenInMemory(logger)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	exec, err := chain.NewExecutor(db, logger)
	require.NoError(t, err)
	err = exec.InitGenesis(&chain.GenesisInit{
		Version: protocol.ProtocolLatest,
		Accounts: []*protocol.Account{
			mertesting.AccountWithBalance(senderID, senderKey, protocol.Mer(1_000_000)),
			mertesting.AccountWithBalance(receiverID, receiverKey, protocol.Mer(1_000_000)),
		},
	})
	require.NoError(t, err)

	jrpc, err := NewJrpc(Options{
		Config:   config.Default(),
		Executor: exec,
		Logger:   logger,
	})
	require.NoError(t, err)
	return jrpc
}

func params(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestStatus(t *testing.T) {
	jrpc := setupJrpc(t)

	resp := jrpc.Status(context.Background(), nil)
	switch r := resp.(type) {
	case *StatusResponse:
		require.True(t, r.Ok)
		require.Zero(t, r.Height)
		require.Equal(t, protocol.ProtocolLatest, r.Version)
		require.Zero(t, r.Burned.Sign())
	default:
		t.Fatalf("Expected status, got %T", r)
	}
}

func TestProtocolVersion(t *testing.T) {
	jrpc := setupJrpc(t)

	resp := jrpc.ProtocolVersion(context.Background(), nil)
	switch r := resp.(type) {
	case *ProtocolVersionResponse:
		require.Equal(t, protocol.ProtocolLatest, r.Version)
		require.True(t, r.NonrefundableStorage)
	default:
		t.Fatalf("Expected protocol version, got %T", r)
	}
}

func TestQueryAccount(t *testing.T) {
	jrpc := setupJrpc(t)

	resp := jrpc.QueryAccount(context.Background(), params(t, &AccountQuery{AccountID: senderID}))
	switch r := resp.(type) {
	case *QueryResponse:
		require.Equal(t, "account", r.Type)
		account, ok := r.Data.(*protocol.Account)
		require.True(t, ok, "Expected an account, got %T", r.Data)
		require.Equal(t, protocol.AccountID(senderID), account.ID)
		require.Equal(t, protocol.Mer(1_000_000).String(), account.Amount.String())
		require.NotNil(t, account.GetKey(senderKey))
	default:
		t.Fatalf("Expected account, got %T", r)
	}
}

func TestQueryAccountNotFound(t *testing.T) {
	jrpc := setupJrpc(t)

	resp := jrpc.QueryAccount(context.Background(), params(t, &AccountQuery{AccountID: "test9"}))
	switch r := resp.(type) {
	case jsonrpc2.Error:
		require.Equal(t, ErrCodeProtocolBase-jsonrpc2.ErrorCode(errors.NotFound), r.Code)
	default:
		t.Fatalf("Expected error, got %T", r)
	}
}

func TestQueryAccountInvalidID(t *testing.T) {
	jrpc := setupJrpc(t)

	// Upper case is not allowed in account IDs
	resp := jrpc.QueryAccount(context.Background(), params(t, &AccountQuery{AccountID: "Test0"}))
	switch r := resp.(type) {
	case jsonrpc2.Error:
		require.Equal(t, jsonrpc2.ErrorCode(ErrCodeValidation), r.Code)
	default:
		t.Fatalf("Expected error, got %T", r)
	}
}

func TestSubmit(t *testing.T) {
	jrpc := setupJrpc(t)

	txn := mertesting.NewTransaction().
		WithSigner(senderID, senderKey).
		WithNonce(1).
		WithReceiver(receiverID).
		Transfer(protocol.OneMer()).
		Build()

	resp := jrpc.Submit(context.Background(), params(t, &SubmitRequest{Transaction: txn}))
	switch r := resp.(type) {
	case *protocol.TransactionStatus:
		require.False(t, r.Failed(), "transaction failed: %v", r.AsError())
		require.Equal(t, errors.Delivered, r.Code)
		require.Equal(t, txn.ID(), r.TxID)
	default:
		t.Fatalf("Expected status, got %T", r)
	}

	// The deposit arrives at the receiver
	resp = jrpc.QueryAccount(context.Background(), params(t, &AccountQuery{AccountID: receiverID}))
	qr, ok := resp.(*QueryResponse)
	require.True(t, ok, "Expected account, got %T", resp)
	account := qr.Data.(*protocol.Account)
	require.Equal(t, protocol.Mer(1_000_001).String(), account.Amount.String())
}

func TestSubmitInsufficientBalance(t *testing.T) {
	jrpc := setupJrpc(t)

	txn := mertesting.NewTransaction().
		WithSigner(senderID, senderKey).
		WithNonce(1).
		WithReceiver(receiverID).
		Transfer(protocol.Mer(2_000_000)).
		Build()

	resp := jrpc.Submit(context.Background(), params(t, &SubmitRequest{Transaction: txn}))
	switch r := resp.(type) {
	case *protocol.TransactionStatus:
		require.True(t, r.Failed())
		require.Equal(t, errors.InsufficientBalance, r.Code)
	default:
		t.Fatalf("Expected status, got %T", r)
	}
}

func TestHTTPStatus(t *testing.T) {
	jrpc := setupJrpc(t)
	server := httptest.NewServer(jrpc.NewMux())
	t.Cleanup(server.Close)

	hres, err := http.Get(server.URL + "/status")
	require.NoError(t, err)
	defer hres.Body.Close()
	require.Equal(t, http.StatusOK, hres.StatusCode)

	status := new(StatusResponse)
	require.NoError(t, json.NewDecoder(hres.Body).Decode(status))
	require.True(t, status.Ok)
	require.Equal(t, protocol.ProtocolLatest, status.Version)
}

func TestHTTPVersion(t *testing.T) {
	jrpc := setupJrpc(t)
	server := httptest.NewServer(jrpc.NewMux())
	t.Cleanup(server.Close)

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "version",
	})
	require.NoError(t, err)

	hres, err := http.Post(server.URL+"/v1", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer hres.Body.Close()

	var res struct {
		Result interface{} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(hres.Body).Decode(&res))

	version := new(VersionResponse)
	require.NoError(t, mapstructure.Decode(res.Result, version))
	require.Equal(t, meridian.Version, version.Version)
	require.Equal(t, meridian.IsVersionKnown(), version.VersionIsKnown)
}

func TestHTTPSubmit(t *testing.T) {
	jrpc := setupJrpc(t)
	server := httptest.NewServer(jrpc.NewMux())
	t.Cleanup(server.Close)

	txn := mertesting.NewTransaction().
		WithSigner(senderID, senderKey).
		WithNonce(1).
		WithReceiver(receiverID).
		Transfer(protocol.OneMer()).
		Build()

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "submit",
		"params":  &SubmitRequest{Transaction: txn},
	})
	require.NoError(t, err)

	hres, err := http.Post(server.URL+"/v1", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer hres.Body.Close()

	var res struct {
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.NewDecoder(hres.Body).Decode(&res))
	require.NotNil(t, res.Result, "Expected a result")

	status := new(protocol.TransactionStatus)
	require.NoError(t, json.Unmarshal(res.Result, status))
	require.False(t, status.Failed(), "transaction failed: %v", status.AsError())
	require.Equal(t, errors.Delivered, status.Code)
}
