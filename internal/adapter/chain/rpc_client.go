package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"claim-escrow-engine/config"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"

	"github.com/rs/zerolog"
)

// JSON-RPC error codes the escrow gateway uses for contract reverts.
// Any other error is treated as transient.
const (
	codeAlreadySettled = -32010
	codeAlreadyLocked  = -32011
	codeReverted       = -32012
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// escrowCall addresses one claim's escrow entry on the contract.
type escrowCall struct {
	Contract  string `json:"contract"`
	ClaimID   string `json:"claim_id"`
	Recipient string `json:"recipient,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
}

type rpcReceipt struct {
	TxHash        string `json:"tx_hash"`
	Status        string `json:"status"`
	Confirmations int    `json:"confirmations"`
	RevertReason  string `json:"revert_reason"`
}

// RPCClient implements ports.EscrowContract against a JSON-RPC 2.0 escrow gateway.
type RPCClient struct {
	url        string
	contract   string
	httpClient HTTPClient
	log        zerolog.Logger
	nextID     atomic.Uint64
}

// NewRPCClient creates a gateway client. Per-call deadlines come from the
// caller's context; the http.Client timeout bounds a single round trip.
func NewRPCClient(cfg config.ChainConfig, httpClient HTTPClient, log zerolog.Logger) *RPCClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &RPCClient{
		url:        cfg.RPCURL,
		contract:   cfg.ContractAddress,
		httpClient: httpClient,
		log:        log,
	}
}

// Lock implements ports.EscrowContract.
func (c *RPCClient) Lock(ctx context.Context, claimID string, amount int64) (string, error) {
	var txHash string
	err := c.call(ctx, "escrow_lock", &txHash, escrowCall{Contract: c.contract, ClaimID: claimID, Amount: amount})
	return txHash, err
}

// Release implements ports.EscrowContract.
func (c *RPCClient) Release(ctx context.Context, claimID, recipient string, amount int64) (string, error) {
	var txHash string
	err := c.call(ctx, "escrow_release", &txHash, escrowCall{
		Contract:  c.contract,
		ClaimID:   claimID,
		Recipient: recipient,
		Amount:    amount,
	})
	return txHash, err
}

// IsSettled implements ports.EscrowContract.
func (c *RPCClient) IsSettled(ctx context.Context, claimID string) (bool, error) {
	var settled bool
	err := c.call(ctx, "escrow_isSettled", &settled, escrowCall{Contract: c.contract, ClaimID: claimID})
	return settled, err
}

// SettlementTx implements ports.EscrowContract. Empty when the escrow is unsettled.
func (c *RPCClient) SettlementTx(ctx context.Context, claimID string) (string, error) {
	var txHash *string
	if err := c.call(ctx, "escrow_settlementTx", &txHash, escrowCall{Contract: c.contract, ClaimID: claimID}); err != nil {
		return "", err
	}
	if txHash == nil {
		return "", nil
	}
	return *txHash, nil
}

// Receipt implements ports.EscrowContract. A null result means the
// transaction is not yet mined.
func (c *RPCClient) Receipt(ctx context.Context, txHash string) (*domain.TxReceipt, error) {
	var r *rpcReceipt
	if err := c.call(ctx, "escrow_getTransactionReceipt", &r, txHash); err != nil {
		return nil, err
	}
	if r == nil {
		return &domain.TxReceipt{TxHash: txHash, Status: domain.ReceiptPending}, nil
	}

	status := domain.ReceiptStatus(r.Status)
	switch status {
	case domain.ReceiptPending, domain.ReceiptConfirmed, domain.ReceiptReverted:
	default:
		return nil, fmt.Errorf("escrow_getTransactionReceipt: unknown status %q", r.Status)
	}
	return &domain.TxReceipt{
		TxHash:        txHash,
		Status:        status,
		Confirmations: r.Confirmations,
		RevertReason:  r.RevertReason,
	}, nil
}

// Ping implements ports.HealthChecker.
func (c *RPCClient) Ping(ctx context.Context) error {
	var version string
	return c.call(ctx, "web3_clientVersion", &version)
}

// Name returns the dependency name.
func (c *RPCClient) Name() string {
	return "escrow-gateway"
}

func (c *RPCClient) call(ctx context.Context, method string, result any, params ...any) error {
	if params == nil {
		params = []any{}
	}
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: gateway returned HTTP %d", method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if rpcResp.Error != nil {
		c.log.Debug().Str("method", method).Int("code", rpcResp.Error.Code).Str("message", rpcResp.Error.Message).Msg("gateway returned error")
		return mapRPCError(method, rpcResp.Error)
	}
	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("%s: decode result: %w", method, err)
	}
	return nil
}

func mapRPCError(method string, e *rpcError) error {
	switch e.Code {
	case codeAlreadySettled:
		return fmt.Errorf("%s: %w", method, ports.ErrContractAlreadySettled)
	case codeAlreadyLocked:
		return fmt.Errorf("%s: %w", method, ports.ErrContractAlreadyLocked)
	case codeReverted:
		return fmt.Errorf("%s: %w: %s", method, ports.ErrContractRejected, e.Message)
	}
	return fmt.Errorf("%s: %w", method, e)
}
