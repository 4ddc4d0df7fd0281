package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"claim-escrow-engine/config"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"

	"github.com/rs/zerolog"
)

// defaultRetryIntervals are the waits between delivery attempts.
var defaultRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// EventClaimStatusChanged is the only event type currently emitted.
const EventClaimStatusChanged = "CLAIM_STATUS_CHANGED"

// NotificationPayload is the JSON body posted to the insurer endpoint.
type NotificationPayload struct {
	EventType string           `json:"event_type"`
	Data      NotificationData `json:"data"`
	Signature string           `json:"signature"`
}

// NotificationData holds the claim snapshot in a notification. The signature
// covers its JSON encoding.
type NotificationData struct {
	ClaimID        string   `json:"claim_id"`
	Status         string   `json:"status"`
	Decision       *string  `json:"decision"`
	Confidence     *float64 `json:"confidence"`
	ApprovedAmount *int64   `json:"approved_amount"`
	TxHash         *string  `json:"tx_hash"`
	Timestamp      int64    `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NotificationService implements ports.Notifier with signed webhooks
// delivered asynchronously.
type NotificationService struct {
	cfg        config.NotifyConfig
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	intervals  []time.Duration
	log        zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewNotificationService creates a notifier. An empty webhook URL disables delivery.
func NewNotificationService(cfg config.NotifyConfig, sigSvc ports.SignatureService, httpClient HTTPClient, log zerolog.Logger) *NotificationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &NotificationService{
		cfg:        cfg,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		intervals:  defaultRetryIntervals,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// NotifyStatusChange queues a notification for the claim's current state.
func (s *NotificationService) NotifyStatusChange(_ context.Context, claim *domain.Claim) error {
	if s.cfg.WebhookURL == "" {
		s.log.Debug().Str("claim_id", claim.ID.String()).Msg("notify: no webhook URL configured, skipping")
		return nil
	}

	data := NotificationData{
		ClaimID:        claim.ID.String(),
		Status:         string(claim.Status),
		Confidence:     claim.Confidence,
		ApprovedAmount: claim.ApprovedAmount,
		TxHash:         claim.TxHash,
		Timestamp:      time.Now().Unix(),
	}
	if claim.Decision != nil {
		d := string(*claim.Decision)
		data.Decision = &d
	}

	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal notification data: %w", err)
	}
	payload := NotificationPayload{
		EventType: EventClaimStatusChanged,
		Data:      data,
		Signature: s.sigSvc.Sign(s.cfg.Secret, ports.SignedMessage{
			Purpose:   ports.SignPurposeClaimStatus,
			ClaimID:   data.ClaimID,
			Timestamp: data.Timestamp,
			Body:      dataBytes,
		}),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.deliverWithRetries(body, data.ClaimID, data.Timestamp)
	}()
	return nil
}

// Close abandons pending retries and waits for in-flight deliveries.
func (s *NotificationService) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *NotificationService) deliverWithRetries(body []byte, claimID string, ts int64) {
	for attempt := 0; attempt <= len(s.intervals); attempt++ {
		if attempt > 0 {
			select {
			case <-s.ctx.Done():
				s.log.Warn().Str("claim_id", claimID).Int("attempt", attempt+1).Msg("notify: shutting down, delivery abandoned")
				return
			case <-time.After(s.intervals[attempt-1]):
			}
		}

		req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
		if err != nil {
			s.log.Error().Err(err).Str("claim_id", claimID).Msg("notify: failed to create request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Timestamp", strconv.FormatInt(ts, 10))

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.log.Warn().Err(err).Str("claim_id", claimID).Int("attempt", attempt+1).Msg("notify: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.log.Info().Str("claim_id", claimID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: delivered")
			return
		}

		s.log.Warn().Str("claim_id", claimID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: non-2xx response, retrying")
	}

	s.log.Error().Str("claim_id", claimID).Msg("notify: all retry attempts exhausted")
}
