// Package auth implements the shared daily admin code: everyone on the
// council uses the same code, rotated at midnight.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"time"
)

type CodeGate struct {
	secret       string
	emergencyKey string
}

func NewCodeGate(secret, emergencyKey string) *CodeGate {
	return &CodeGate{
		secret:       secret,
		emergencyKey: emergencyKey,
	}
}

// DailyCode is the first 8 hex characters of SHA-256(YYYYMMDD + secret),
// uppercased.
func (g *CodeGate) DailyCode(date time.Time) string {
	sum := sha256.Sum256([]byte(date.Format("20060102") + g.secret))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:8])
}

// Verify checks the input against today's code, or against the emergency
// key when one is configured.
func (g *CodeGate) Verify(input string) bool {
	if g.emergencyKey != "" &&
		subtle.ConstantTimeCompare([]byte(input), []byte(g.emergencyKey)) == 1 {
		return true
	}
	today := g.DailyCode(time.Now())
	return subtle.ConstantTimeCompare([]byte(strings.ToUpper(input)), []byte(today)) == 1
}
