package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DomainRun prefixes the fingerprint of a conversion result.
// The version suffix allows the encoding to change later.
const DomainRun = "phoenix/scenario-run/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint returns a content hash of a result.
// Two runs with the same input, seed and codes produce the same value.
func Fingerprint(r *Result) (string, error) {
	// Struct fields marshal in declaration order, so the encoding is stable.
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRun, data), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Result holds only strings, ints and bools, so marshaling cannot fail.
func MustFingerprint(r *Result) string {
	fp, err := Fingerprint(r)
	if err != nil {
		panic(err)
	}
	return fp
}
