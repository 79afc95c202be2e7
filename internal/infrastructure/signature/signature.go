// Package signature verifies HMAC signed webhook deliveries.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSignature is returned when a delivery cannot be authenticated
var ErrInvalidSignature = errors.New("invalid webhook signature")

// DefaultTolerance is the accepted distance between a delivery timestamp and now
const DefaultTolerance = 5 * time.Minute

// PaddleVerifier checks the Paddle-Signature header: ts=<unix>;h1=<hex hmac(ts:body)>
type PaddleVerifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewPaddleVerifier creates a verifier for the notification secret
func NewPaddleVerifier(secret string) *PaddleVerifier {
	return &PaddleVerifier{secret: []byte(secret), tolerance: DefaultTolerance, now: time.Now}
}

// Verify accepts the delivery when ts is within tolerance and any h1 entry matches
func (v *PaddleVerifier) Verify(header string, body []byte) error {
	var ts string
	var candidates []string
	for _, part := range strings.Split(header, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "h1":
			candidates = append(candidates, value)
		}
	}
	if ts == "" || len(candidates) == 0 {
		return fmt.Errorf("%w: malformed header", ErrInvalidSignature)
	}
	if err := checkTimestamp(ts, v.now(), v.tolerance); err != nil {
		return err
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(ts + ":"))
	mac.Write(body)
	expected := mac.Sum(nil)

	for _, candidate := range candidates {
		got, err := hex.DecodeString(candidate)
		if err != nil {
			continue
		}
		if hmac.Equal(got, expected) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// checkTimestamp rejects unix timestamps further than tolerance from now, in either direction
func checkTimestamp(stamp string, now time.Time, tolerance time.Duration) error {
	seconds, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp", ErrInvalidSignature)
	}
	delta := now.Sub(time.Unix(seconds, 0))
	if delta > tolerance || delta < -tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}
	return nil
}

// SignPaddle builds a Paddle-Signature header value
func SignPaddle(secret string, ts int64, body []byte) string {
	stamp := strconv.FormatInt(ts, 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(stamp + ":"))
	mac.Write(body)
	return "ts=" + stamp + ";h1=" + hex.EncodeToString(mac.Sum(nil))
}

// SvixHeaders carries the three headers of a Svix delivery
type SvixHeaders struct {
	ID        string
	Timestamp string
	Signature string
}

// SvixVerifier checks deliveries signed with a whsec_ secret
type SvixVerifier struct {
	key       []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewSvixVerifier decodes the base64 part of a whsec_ secret
func NewSvixVerifier(secret string) (*SvixVerifier, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode webhook secret: %w", err)
	}
	return &SvixVerifier{key: key, tolerance: DefaultTolerance, now: time.Now}, nil
}

// Verify checks the timestamp window and the v1 signatures over id.timestamp.body
func (v *SvixVerifier) Verify(h SvixHeaders, body []byte) error {
	if h.ID == "" || h.Timestamp == "" || h.Signature == "" {
		return fmt.Errorf("%w: missing headers", ErrInvalidSignature)
	}

	if err := checkTimestamp(h.Timestamp, v.now(), v.tolerance); err != nil {
		return err
	}

	expected := v.sign(h.ID, h.Timestamp, body)
	for _, entry := range strings.Fields(h.Signature) {
		version, sig, ok := strings.Cut(entry, ",")
		if !ok || version != "v1" {
			continue
		}
		got, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(got, expected) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// Sign returns a svix-signature header value for the delivery
func (v *SvixVerifier) Sign(id, timestamp string, body []byte) string {
	return "v1," + base64.StdEncoding.EncodeToString(v.sign(id, timestamp, body))
}

func (v *SvixVerifier) sign(id, timestamp string, body []byte) []byte {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(id + "." + timestamp + "."))
	mac.Write(body)
	return mac.Sum(nil)
}
