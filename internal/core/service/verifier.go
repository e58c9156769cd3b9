package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"trackerbot/internal/core/domain"
)

const (
	signatureVersion = "v0"
	// maxClockSkew bounds the validity window of any captured request.
	maxClockSkew = 300 * time.Second
)

// Verifier checks that an inbound request carries a valid time-bound
// authentication tag computed over the raw request body.
type Verifier struct {
	secret string
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret, now: time.Now}
}

// Verify accepts or rejects a request given the exact raw body bytes as
// received, before any decoding. Re-serializing a parsed body would produce
// different bytes and break verification.
func (v *Verifier) Verify(body []byte, timestamp, signature string) error {
	if timestamp == "" || signature == "" {
		return domain.ErrMissingSignature
	}

	claimed, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return domain.ErrInvalidSignature
	}

	skew := v.now().Unix() - claimed
	if skew < 0 {
		skew = -skew
	}
	if skew > int64(maxClockSkew.Seconds()) {
		return domain.ErrExpiredTimestamp
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write([]byte(signatureVersion + ":" + timestamp + ":"))
	mac.Write(body)
	expected := signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrInvalidSignature
	}

	return nil
}
