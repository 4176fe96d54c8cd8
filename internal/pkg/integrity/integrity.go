// Package integrity stamps time entries with a keyed digest so that later
// edits outside the application can be detected.
package integrity

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const secretBytes = 32

// Fields is the subset of an entry covered by the digest.
type Fields struct {
	EmployeeID string
	Date       time.Time
	StartTime  *string
	EndTime    *string
	Category   string
	IsOutside  bool
	Gratuity   decimal.Decimal
	CreatedAt  time.Time
}

// canonical fixes key order and value formatting of the digest input.
type canonical struct {
	EmployeeID string      `json:"employee_id"`
	Date       string      `json:"date"`
	StartTime  *string     `json:"start_time"`
	EndTime    *string     `json:"end_time"`
	Category   string      `json:"category"`
	IsOutside  int         `json:"is_outside"`
	Tip        json.Number `json:"tip"`
	CreatedAt  string      `json:"created_at"`
}

// Canonical returns the byte sequence that is hashed for f.
func Canonical(f Fields) []byte {
	c := canonical{
		EmployeeID: f.EmployeeID,
		Date:       f.Date.Format("2006-01-02"),
		StartTime:  emptyToNil(f.StartTime),
		EndTime:    emptyToNil(f.EndTime),
		Category:   f.Category,
		Tip:        json.Number(f.Gratuity.StringFixed(2)),
		CreatedAt:  NormalizeTimestamp(f.CreatedAt).Format(time.RFC3339Nano),
	}
	if f.IsOutside {
		c.IsOutside = 1
	}

	// Marshal of a struct of strings and numbers cannot fail.
	b, _ := json.Marshal(c)
	return b
}

// Stamp returns hex(HMAC-SHA256(secret, Canonical(f))).
func Stamp(secret string, f Fields) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(Canonical(f))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the digest and compares it in constant time.
func Verify(secret string, f Fields, hash string) bool {
	expected, err := hex.DecodeString(Stamp(secret, f))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

// NewSecret returns 32 random bytes, hex encoded.
func NewSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NormalizeTimestamp truncates t to the precision PostgreSQL stores, in UTC,
// so a stamped creation time survives a database round trip unchanged.
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
