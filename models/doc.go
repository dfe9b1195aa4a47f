// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON. Each carries go-playground/validator tags
that are checked by middleware.Validate:

  - AlertRequest: title, message, severity, region, active, expires_at
  - PriceRequest: commodity, market, price, unit, currency
  - ScheduleRequest: route_name, origin, destination, departure_time, days, operator, notes
  - ModeratorApplyRequest: email, display_name, organization
  - ContactRequest: name, email, message

# Response Types

  - CreatedResponse: id
  - UpdatedResponse: id, updated_at
  - ModeratorStatusResponse: moderator_id, status
  - ApproveModeratorResponse: moderator_id, token
  - ContactResponse: reference, message
  - ErrorResponse: error, message

# Domain Types

  - Alert: community alert shown on the dashboard and read out by the IVR
  - MarketPrice: commodity price at a market
  - TransportSchedule: a departure on a route
  - Moderator: a content manager, approved by hand
  - ContactMessage: a message left through the contact form

# Constants

Moderator status:

	ModeratorPending  = "pending"
	ModeratorApproved = "approved"
	ModeratorRejected = "rejected"

Alert severity:

	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
*/
package models
