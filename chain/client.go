// Package chain provides the JSON-RPC client used to read the current epoch
// from a fullnode.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Client is a minimal fullnode JSON-RPC client. The zero value is not
// usable; construct with New.
type Client struct {
	HTTP *http.Client
}

// New returns a client with a bounded per-request timeout. The pipeline
// applies its own deadline on top via context.
func New() *Client {
	return &Client{HTTP: &http.Client{Timeout: 10 * time.Second}}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result *systemStateSummary `json:"result"`
	Error  *rpcError           `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type systemStateSummary struct {
	Epoch json.Number `json:"epoch"`
}

// CurrentEpoch queries endpoint for the latest system state and returns its
// epoch. Fullnodes encode the epoch as a decimal string; numbers are
// accepted too.
func (c *Client) CurrentEpoch(ctx context.Context, endpoint string) (uint64, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "suix_getLatestSuiSystemState",
		Params:  []any{},
	})
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build epoch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fullnode returned %d", resp.StatusCode)
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("malformed fullnode response: %w", err)
	}
	if out.Error != nil {
		return 0, fmt.Errorf("fullnode error %d: %s", out.Error.Code, out.Error.Message)
	}
	if out.Result == nil {
		return 0, fmt.Errorf("fullnode response missing result")
	}
	epoch, err := strconv.ParseUint(out.Result.Epoch.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed epoch %q: %w", out.Result.Epoch, err)
	}
	return epoch, nil
}
