// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication, hashing and token generation utilities.

# Admin Key

Admin operations (moderator approval) compare the X-Admin-Key header against
the configured ADMIN_SECRET in constant time:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminSecret)

An empty secret disables admin access entirely.

# Moderator Tokens

Approved moderators receive a bearer token of the form

	<moderatorID>.<base64url(HMAC-SHA256(salt, moderatorID))>

The token is deterministic, so it does not need to be stored:

	token := auth.GenerateModeratorToken(moderatorID, salt)
	moderatorID, err := auth.ParseModeratorToken(token, salt)

ParseModeratorToken only proves the token was issued by this server. The
caller still checks that the moderator is approved.

# References and Hashing

Short base62 reference codes for contact messages:

	ref := auth.GenerateReference(messageID, salt)

One-way hashes for IP addresses and caller numbers:

	hash := auth.HashIdentifier(ip, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
