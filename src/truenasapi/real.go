package truenasapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 60 * time.Second
	callTimeout      = 5 * time.Minute
)

// RealClient speaks JSON-RPC 2.0 over a websocket to the TrueNAS middleware.
type RealClient struct {
	conn   *websocket.Conn
	nextID uint64
}

// Connect dials the middleware API of the given host. With verifyTLS false
// the server certificate and hostname are not checked.
func Connect(host string, verifyTLS bool) (*RealClient, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	if !verifyTLS {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	endpoint := Endpoint(host)
	conn, _, err := dialer.Dial(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", endpoint, err)
	}
	return &RealClient{conn: conn}, nil
}

func (c *RealClient) LoginWithAPIKey(ctx context.Context, key string) error {
	_, err := c.call(ctx, "auth.login_with_api_key", []any{key})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (c *RealClient) DownloadConfig(ctx context.Context, includeSecrets bool) (Download, error) {
	params := []any{
		"config.save",
		[]any{map[string]bool{"secretseed": includeSecrets}},
		"config.tar",
	}
	result, err := c.call(ctx, "core.download", params)
	if err != nil {
		return Download{}, fmt.Errorf("core.download: %w", err)
	}
	return decodeDownload(result)
}

func (c *RealClient) Close() error {
	return c.conn.Close()
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
}

// call performs one request/response round trip. The middleware may push
// event notifications on the same connection; replies with a different or
// missing id are skipped until ours arrives or the deadline passes.
func (c *RealClient) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	c.nextID++
	id := c.nextID

	deadline := time.Now().Add(callTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}

	req := rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params}
	if err := c.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	for {
		var resp rpcResponse
		if err := c.conn.ReadJSON(&resp); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		if resp.ID != id {
			continue
		}
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	}
}
