// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"encoding/json"
	"io"
	stdlog "log"
	"mime"
	"net/http"
	"os"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/go-playground/validator/v10"

	"gitlab.com/meridiannetwork/meridian/config"
	"gitlab.com/meridiannetwork/meridian/internal/chain"
	"gitlab.com/meridiannetwork/meridian/internal/logging"
	"gitlab.com/meridiannetwork/meridian/internal/web"
	"gitlab.com/meridiannetwork/meridian/protocol"
)

// Options configures the JSON-RPC service.
type Options struct {
	Config   *config.Config
	Executor *chain.Executor
	Logger   logging.Logger
}

// JrpcMethods serves the JSON-RPC API.
type JrpcMethods struct {
	Options
	methods  jsonrpc2.MethodMap
	validate *validator.Validate
	logger   logging.OptionalLogger
}

func NewJrpc(opts Options) (*JrpcMethods, error) {
	var err error
	m := new(JrpcMethods)
	m.Options = opts
	m.logger.Set(opts.Logger, "module", "jrpc")

	m.validate, err = protocol.NewValidator()
	if err != nil {
		return nil, err
	}

	m.populateMethodTable()
	return m, nil
}

func (m *JrpcMethods) populateMethodTable() {
	if m.methods == nil {
		m.methods = make(jsonrpc2.MethodMap)
	}

	m.methods["status"] = m.Status
	m.methods["version"] = m.Version
	m.methods["protocol-version"] = m.ProtocolVersion
	m.methods["query-account"] = m.QueryAccount
	m.methods["submit"] = m.Submit
}

// NewMux returns an HTTP mux that serves the JSON-RPC API on /v1 and exposes
// status and version as plain endpoints.
func (m *JrpcMethods) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", web.Handler())
	mux.Handle("/status", m.jrpc2http(m.Status))
	mux.Handle("/version", m.jrpc2http(m.Version))
	mux.Handle("/v1", jsonrpc2.HTTPRequestHandler(m.methods, stdlog.New(os.Stdout, "", 0)))
	return mux
}

func (m *JrpcMethods) jrpc2http(jrpc jsonrpc2.MethodFunc) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			res.WriteHeader(http.StatusBadRequest)
			return
		}

		var params json.RawMessage
		mediatype, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
		if mediatype == "application/json" || mediatype == "text/json" {
			params = body
		}

		r := jrpc(req.Context(), params)
		res.Header().Add("Content-Type", "application/json")
		data, err := json.Marshal(r)
		if err != nil {
			m.logger.Error("Failed to marshal response", "error", err)
			res.WriteHeader(http.StatusInternalServerError)
			return
		}

		_, _ = res.Write(data)
	}
}
