package webhook

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

// Signature verification for the two inbound webhook sources: the
// video provider signs "t.body" with a hex HMAC carried in a
// "t=...,v1=..." header; the auth provider signs "id.timestamp.body"
// with base64 HMACs in a space-separated "v1,..." list.

var (
	// ErrInvalidSignature covers malformed headers, digest mismatches
	// and unparseable timestamps. Callers answer 401, never 500.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrStaleTimestamp rejects replayed events outside the tolerance.
	ErrStaleTimestamp = errors.New("webhook timestamp outside tolerance")
)

// DefaultTolerance bounds how old a signed timestamp may be.
const DefaultTolerance = 5 * time.Minute

// VerifyMuxSignature checks a video provider signature header against
// the raw request body.
func VerifyMuxSignature(payload []byte, header, secret string, tolerance time.Duration) error {
	var timestamp, signature string
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "v1":
			signature = v
		}
	}
	if timestamp == "" || signature == "" {
		return ErrInvalidSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	if tolerance > 0 {
		age := time.Since(time.Unix(ts, 0))
		if age > tolerance || age < -tolerance {
			return ErrStaleTimestamp
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}

	return nil
}

// SignMux produces a provider-format signature header for a payload.
// Used by tests; the provider does the same on its side.
func SignMux(payload []byte, secret string, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

// VerifySvixSignature checks an auth provider (svix-format) signature.
// The secret may carry the conventional "whsec_" prefix around a
// base64 key; a raw secret is accepted as-is.
func VerifySvixSignature(msgID, timestamp, sigHeader string, payload []byte, secret string) error {
	if msgID == "" || timestamp == "" || sigHeader == "" {
		return ErrInvalidSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	age := time.Since(time.Unix(ts, 0))
	if age > DefaultTolerance || age < -DefaultTolerance {
		return ErrStaleTimestamp
	}

	key := svixKey(secret)
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	// The header may list several versioned signatures.
	for _, part := range strings.Fields(sigHeader) {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// SignSvix produces an auth provider-format signature for tests.
func SignSvix(msgID, timestamp string, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, svixKey(secret))
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func svixKey(secret string) []byte {
	trimmed := strings.TrimPrefix(secret, "whsec_")
	if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil && trimmed != secret {
		return decoded
	}
	return []byte(trimmed)
}
