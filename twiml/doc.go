// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package twiml generates the TwiML documents that drive the VoiceLink phone
menu.

# Documents

A Response is an ordered list of verbs (Say, Gather, Pause, Redirect,
Hangup) rendered with encoding/xml, so every text node and attribute is
escaped:

	out, err := twiml.NewResponse(
		twiml.Say{Text: "Hello"},
		twiml.Hangup{},
	).Render()

# Menu

Menu is a stateless state machine. The telephony provider keeps the call;
each request carries the caller's key press and gets back the next document:

	Welcome            → Gather(1 digit, action=/twiml/menu), then on silence
	                     Say(no input) + Redirect(/twiml/voice)
	Select("1")        → market prices      + Pause + Redirect(/twiml/voice)
	Select("2")        → transport schedules + Pause + Redirect(/twiml/voice)
	Select("3")        → community alerts   + Pause + Redirect(/twiml/voice)
	Select("4")        → help               + Pause + Redirect(/twiml/voice)
	Select("0" | "*")  → Redirect(/twiml/voice)
	Select("9")        → Say(goodbye) + Hangup
	anything else      → Say(invalid) + Redirect(/twiml/voice)

Leaf content comes from a ContentSource (db.Store in production). A
failing source never fails the call; the leaf speaks the "unavailable"
prompt instead.

# Prompts

All spoken text lives in Prompts. LoadPrompts overlays a YAML file on the
built-in defaults:

	voice: Polly.Aditi
	language: en-IN
	welcome: "Welcome to VoiceLink."
	item_limit: 3

WatchPrompts reloads that file on save and hands the result to
Menu.SetPrompts. A file that fails validation is ignored.
*/
package twiml
