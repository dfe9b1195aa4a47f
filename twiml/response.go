// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twiml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Verb is an element that may appear inside <Response> or <Gather>
type Verb interface {
	isVerb()
}

// Response is the root TwiML document
type Response struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []Verb
}

// Say speaks text to the caller
type Say struct {
	XMLName  xml.Name `xml:"Say"`
	Voice    string   `xml:"voice,attr,omitempty"`
	Language string   `xml:"language,attr,omitempty"`
	Loop     int      `xml:"loop,attr,omitempty"`
	Text     string   `xml:",chardata"`
}

// Gather collects DTMF digits and posts them to Action
type Gather struct {
	XMLName   xml.Name `xml:"Gather"`
	Input     string   `xml:"input,attr,omitempty"`
	NumDigits int      `xml:"numDigits,attr,omitempty"`
	Action    string   `xml:"action,attr,omitempty"`
	Method    string   `xml:"method,attr,omitempty"`
	Timeout   int      `xml:"timeout,attr,omitempty"`
	Verbs     []Verb
}

// Pause waits silently for Length seconds
type Pause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr,omitempty"`
}

// Redirect transfers control to another TwiML URL
type Redirect struct {
	XMLName xml.Name `xml:"Redirect"`
	Method  string   `xml:"method,attr,omitempty"`
	URL     string   `xml:",chardata"`
}

// Hangup ends the call
type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

func (Say) isVerb()      {}
func (Gather) isVerb()   {}
func (Pause) isVerb()    {}
func (Redirect) isVerb() {}
func (Hangup) isVerb()   {}

// NewResponse creates a document holding the given verbs
func NewResponse(verbs ...Verb) *Response {
	return &Response{Verbs: verbs}
}

// Append adds verbs to the end of the document
func (r *Response) Append(verbs ...Verb) *Response {
	r.Verbs = append(r.Verbs, verbs...)
	return r
}

// Render encodes the document with an XML declaration.
// Text and attributes are escaped by encoding/xml.
func (r *Response) Render() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	if err := xml.NewEncoder(&buf).Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode twiml: %w", err)
	}

	return buf.Bytes(), nil
}
