package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"claim-escrow-engine/config"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/apperror"

	"github.com/rs/zerolog"
)

const evaluatePath = "/v1/evaluate"

// VerdictRejectedInput is the oracle's explicit refusal to score the input.
const VerdictRejectedInput = "REJECTED_INPUT"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.EvaluationOracle over HTTP.
// Requests are signed: X-Signature = HMAC(secret, POST|/v1/evaluate|ts|body).
type Client struct {
	baseURL    string
	secret     string
	timeout    time.Duration
	httpClient HTTPClient
	signer     ports.SignatureService
	log        zerolog.Logger
	now        func() time.Time
}

// NewClient creates an oracle client.
func NewClient(cfg config.OracleConfig, httpClient HTTPClient, signer ports.SignatureService, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		secret:     cfg.Secret,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		signer:     signer,
		log:        log,
		now:        time.Now,
	}
}

type rejection struct {
	Reason string `json:"reason"`
}

// Score posts the claim to the oracle and returns its raw verdict.
func (c *Client) Score(ctx context.Context, in ports.OracleRequest) (*ports.OracleResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode oracle request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+evaluatePath, bytes.NewReader(body))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build oracle request: %w", err))
	}
	ts := c.now().Unix()
	sig := c.signer.Sign(c.secret, ports.SignedMessage{
		Purpose:   ports.SignPurposeOracleEvaluate,
		ClaimID:   in.ClaimID,
		Timestamp: ts,
		Body:      body,
	})
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Claim-ID", in.ClaimID)
	req.Header.Set("X-Timestamp", strconv.FormatInt(ts, 10))
	req.Header.Set("X-Signature", sig)

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.ErrOracleUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperror.ErrOracleUnavailable(fmt.Errorf("read oracle response: %w", err))
	}

	c.log.Debug().
		Str("claim_id", in.ClaimID).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("oracle responded")

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		var rej rejection
		_ = json.Unmarshal(raw, &rej)
		if rej.Reason == "" {
			rej.Reason = http.StatusText(resp.StatusCode)
		}
		return nil, apperror.ErrOracleRejected(rej.Reason)
	case resp.StatusCode != http.StatusOK:
		return nil, apperror.ErrOracleUnavailable(fmt.Errorf("oracle returned HTTP %d", resp.StatusCode))
	}

	var out ports.OracleResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperror.ErrOracleUnavailable(fmt.Errorf("malformed oracle response: %w", err))
	}
	if out.Decision == VerdictRejectedInput {
		return nil, apperror.ErrOracleRejected(out.Reason)
	}
	return &out, nil
}
