package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"claim-escrow-engine/internal/core/ports"
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256.
// Receivers recompute CanonicalMessage from the request and compare.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign returns the lowercase hex HMAC-SHA256 of the message's canonical form.
func (s *HMACSignatureService) Sign(secretKey string, msg ports.SignedMessage) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(CanonicalMessage(msg)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signature against msg in constant time.
func (s *HMACSignatureService) Verify(secretKey string, msg ports.SignedMessage, signature string) bool {
	return hmac.Equal([]byte(s.Sign(secretKey, msg)), []byte(signature))
}

// CanonicalMessage renders the signed form of msg, one field per line:
//
//	purpose
//	claim id
//	unix timestamp
//	hex sha256 of the body
//
// Hashing the body keeps the canonical form unambiguous whatever the body holds.
func CanonicalMessage(msg ports.SignedMessage) string {
	digest := sha256.Sum256(msg.Body)
	var b strings.Builder
	b.WriteString(msg.Purpose)
	b.WriteByte('\n')
	b.WriteString(msg.ClaimID)
	b.WriteByte('\n')
	b.WriteString(strconv.FormatInt(msg.Timestamp, 10))
	b.WriteByte('\n')
	b.WriteString(hex.EncodeToString(digest[:]))
	return b.String()
}
