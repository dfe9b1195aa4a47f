// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid token format")
)

// ValidateAdminKey compares the X-Admin-Key header against the configured
// admin secret in constant time. An unset secret rejects every key.
func ValidateAdminKey(adminKey, secret string) error {
	if secret == "" || adminKey == "" {
		return ErrInvalidAdminKey
	}
	if !hmac.Equal([]byte(adminKey), []byte(secret)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// moderatorSignature is the HMAC part of a moderator token
func moderatorSignature(moderatorID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(moderatorID))
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// GenerateModeratorToken creates the bearer token handed out when a
// moderator is approved: "<moderatorID>.<signature>".
// Deterministic, so re-approving returns the same token.
func GenerateModeratorToken(moderatorID, salt string) string {
	return moderatorID + "." + moderatorSignature(moderatorID, salt)
}

// ParseModeratorToken verifies a bearer token and returns the moderator ID
func ParseModeratorToken(token, salt string) (string, error) {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 || i == len(token)-1 {
		return "", ErrInvalidToken
	}
	moderatorID, sig := token[:i], token[i+1:]
	expected := moderatorSignature(moderatorID, salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidToken
	}
	return moderatorID, nil
}

// GenerateReference creates a short, deterministic reference code
// (e.g. for contact messages) using base62 for readability over the phone
func GenerateReference(id, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(id))
	sum := h.Sum(nil)

	// Take first 5 bytes for a short code
	return base62Encode(sum[:5])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIdentifier creates a one-way hash of an IP address or phone number
// so it can be stored or logged without revealing the original value
func HashIdentifier(value, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(value))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
