// Package analytics counts unique blog visitors and builds per-author reports.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/genno-io/genno/internal/pkg/httputil"
	"github.com/genno-io/genno/internal/pkg/validators"
)

// VisitorIDLength is the number of hex characters kept from the visitor hash
const VisitorIDLength = 16

// ErrDuplicateVisit is returned when a visitor was already counted for a blog
var ErrDuplicateVisit = errors.New("visit already recorded")

// Visit entity
type Visit struct {
	ID        string    `validate:"required,uuid4"`
	BlogID    string    `validate:"required,max=255"`
	VisitorID string    `validate:"required,len=16,hexadecimal"`
	VisitedAt time.Time `validate:"required"`
}

// Validate for validating Visit struct
func (v *Visit) Validate() error {
	return validators.Struct(v)
}

// VisitorID derives an anonymous visitor identifier from the X-Forwarded-For and
// User-Agent header values. Raw addresses are never stored.
func VisitorID(forwardedFor, userAgent string) string {
	ip := httputil.FirstForwardedIP(forwardedFor)
	ua := httputil.UserAgentOrUnknown(userAgent)

	sum := sha256.Sum256([]byte(ip + "-" + ua))
	return hex.EncodeToString(sum[:])[:VisitorIDLength]
}
