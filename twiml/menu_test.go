// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twiml

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhirendraxd/voicelink/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeContent struct {
	prices    []models.MarketPrice
	schedules []models.TransportSchedule
	alerts    []models.Alert
	err       error

	lastLimit int
}

func (f *fakeContent) MarketPrices(ctx context.Context, limit int) ([]models.MarketPrice, error) {
	f.lastLimit = limit
	return f.prices, f.err
}

func (f *fakeContent) TransportSchedules(ctx context.Context, limit int) ([]models.TransportSchedule, error) {
	f.lastLimit = limit
	return f.schedules, f.err
}

func (f *fakeContent) ActiveAlerts(ctx context.Context, now time.Time, limit int) ([]models.Alert, error) {
	f.lastLimit = limit
	return f.alerts, f.err
}

func newTestMenu(content ContentSource) *Menu {
	m := NewMenu(DefaultPrompts(), content, "/twiml/")
	m.now = func() time.Time { return testNow }
	return m
}

// spoken collects the text of every Say, including those nested in Gather
func spoken(resp *Response) []string {
	var out []string
	var walk func([]Verb)
	walk = func(verbs []Verb) {
		for _, v := range verbs {
			switch v := v.(type) {
			case Say:
				out = append(out, v.Text)
			case Gather:
				walk(v.Verbs)
			}
		}
	}
	walk(resp.Verbs)
	return out
}

func lastVerb(resp *Response) Verb {
	return resp.Verbs[len(resp.Verbs)-1]
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		digits string
		want   Option
	}{
		{"1", OptionPrices},
		{"2", OptionSchedules},
		{"3", OptionAlerts},
		{"4", OptionHelp},
		{"0", OptionRepeat},
		{"*", OptionRepeat},
		{"9", OptionHangup},
		{" 1 ", OptionPrices},
		{"12", OptionPrices},
		{"", OptionInvalid},
		{"   ", OptionInvalid},
		{"5", OptionInvalid},
		{"#", OptionInvalid},
		{"x", OptionInvalid},
	}

	for _, tt := range tests {
		t.Run("digits="+tt.digits, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOption(tt.digits))
		})
	}
}

func TestMenuURLs(t *testing.T) {
	m := newTestMenu(&fakeContent{})
	assert.Equal(t, "/twiml/voice", m.VoiceURL())
	assert.Equal(t, "/twiml/menu", m.MenuURL())
}

func TestWelcome(t *testing.T) {
	m := newTestMenu(&fakeContent{})
	p := DefaultPrompts()

	resp := m.Welcome(context.Background())
	require.Len(t, resp.Verbs, 3)

	gather, ok := resp.Verbs[0].(Gather)
	require.True(t, ok, "first verb should be Gather")
	assert.Equal(t, "dtmf", gather.Input)
	assert.Equal(t, 1, gather.NumDigits)
	assert.Equal(t, "/twiml/menu", gather.Action)
	assert.Equal(t, "POST", gather.Method)
	assert.Equal(t, p.GatherTimeout, gather.Timeout)

	assert.Equal(t, []string{p.Welcome, p.MainMenu, p.NoInput}, spoken(resp))
	assert.Equal(t, Redirect{Method: "POST", URL: "/twiml/voice"}, lastVerb(resp))

	// Every Say carries the configured voice
	say := gather.Verbs[0].(Say)
	assert.Equal(t, p.Voice, say.Voice)
	assert.Equal(t, p.Language, say.Language)
}

func TestSelect_Prices(t *testing.T) {
	content := &fakeContent{prices: []models.MarketPrice{
		{Commodity: "Rice", Market: "Kalimati", Price: 1250.5, Unit: "kg", Currency: "NPR"},
		{Commodity: "Maize", Market: "Central", Price: 45, Unit: "kg", Currency: "NPR"},
	}}
	m := newTestMenu(content)

	resp := m.Select(context.Background(), "1")

	assert.Equal(t, []string{
		DefaultPrompts().PricesIntro,
		"Rice at Kalimati: 1,250.5 NPR per kg.",
		"Maize at Central: 45 NPR per kg.",
	}, spoken(resp))
	assert.Equal(t, DefaultPrompts().ItemLimit, content.lastLimit)
	assert.Equal(t, Pause{Length: 1}, resp.Verbs[len(resp.Verbs)-2])
	assert.Equal(t, Redirect{Method: "POST", URL: "/twiml/voice"}, lastVerb(resp))
}

func TestSelect_Schedules(t *testing.T) {
	content := &fakeContent{schedules: []models.TransportSchedule{
		{RouteName: "Valley Express", Origin: "Kathmandu", Destination: "Pokhara", DepartureTime: "07:30", Days: "daily", Operator: "Sajha", Notes: "Bring exact fare"},
		{RouteName: "Route 5", Origin: "A", Destination: "B", DepartureTime: "14:00"},
	}}
	m := newTestMenu(content)

	resp := m.Select(context.Background(), "2")

	assert.Equal(t, []string{
		DefaultPrompts().SchedulesIntro,
		"Valley Express from Kathmandu to Pokhara departs at 07:30, daily, operated by Sajha. Bring exact fare.",
		"Route 5 from A to B departs at 14:00.",
	}, spoken(resp))
	assert.IsType(t, Redirect{}, lastVerb(resp))
}

func TestSelect_Alerts(t *testing.T) {
	content := &fakeContent{alerts: []models.Alert{
		{Title: "Flood risk", Message: "Avoid the river road!", Severity: models.SeverityCritical, Region: "Ward 4", CreatedAt: testNow.Add(-3 * time.Hour)},
		{Title: "Market closed Friday", Message: "Holiday", Severity: models.SeverityInfo, CreatedAt: testNow.Add(-10 * time.Second)},
	}}
	m := newTestMenu(content)

	resp := m.Select(context.Background(), "3")

	assert.Equal(t, []string{
		DefaultPrompts().AlertsIntro,
		"Urgent alert for Ward 4: Flood risk. Avoid the river road! Posted 3 hours ago.",
		"Notice: Market closed Friday. Holiday. Posted just now.",
	}, spoken(resp))
	assert.IsType(t, Redirect{}, lastVerb(resp))
}

func TestSelect_EmptyContent(t *testing.T) {
	m := newTestMenu(&fakeContent{})
	p := DefaultPrompts()

	tests := []struct {
		digits string
		want   string
	}{
		{"1", p.NoPrices},
		{"2", p.NoSchedules},
		{"3", p.NoAlerts},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			resp := m.Select(context.Background(), tt.digits)
			assert.Equal(t, []string{tt.want}, spoken(resp))
			assert.IsType(t, Redirect{}, lastVerb(resp))
		})
	}
}

func TestSelect_ContentErrorFallsBack(t *testing.T) {
	m := newTestMenu(&fakeContent{err: errors.New("db down")})

	for _, digits := range []string{"1", "2", "3"} {
		resp := m.Select(context.Background(), digits)
		assert.Equal(t, []string{DefaultPrompts().Unavailable}, spoken(resp), "digits %s", digits)
		assert.Equal(t, Redirect{Method: "POST", URL: "/twiml/voice"}, lastVerb(resp))
	}
}

func TestSelect_Help(t *testing.T) {
	m := newTestMenu(&fakeContent{})
	resp := m.Select(context.Background(), "4")

	assert.Equal(t, []string{DefaultPrompts().Help}, spoken(resp))
	assert.IsType(t, Redirect{}, lastVerb(resp))
}

func TestSelect_RepeatHangupInvalid(t *testing.T) {
	m := newTestMenu(&fakeContent{})
	p := DefaultPrompts()

	repeat := m.Select(context.Background(), "0")
	assert.Equal(t, []Verb{Redirect{Method: "POST", URL: "/twiml/voice"}}, repeat.Verbs)

	hangup := m.Select(context.Background(), "9")
	assert.Equal(t, []string{p.Goodbye}, spoken(hangup))
	assert.Equal(t, Hangup{}, lastVerb(hangup))

	for _, digits := range []string{"", "7", "#"} {
		invalid := m.Select(context.Background(), digits)
		assert.Equal(t, []string{p.Invalid}, spoken(invalid))
		assert.Equal(t, Redirect{Method: "POST", URL: "/twiml/voice"}, lastVerb(invalid))
	}
}

func TestSelect_NoPauseWhenDisabled(t *testing.T) {
	p := DefaultPrompts()
	p.LeafPause = 0
	m := NewMenu(p, &fakeContent{}, "/ivr")

	resp := m.Select(context.Background(), "4")
	require.Len(t, resp.Verbs, 2)
	assert.Equal(t, Redirect{Method: "POST", URL: "/ivr/voice"}, resp.Verbs[1])
}

func TestSelect_RendersValidXML(t *testing.T) {
	content := &fakeContent{prices: []models.MarketPrice{
		{Commodity: "Salt & Pepper", Market: "<Main>", Price: 10, Unit: "kg", Currency: "NPR"},
	}}
	m := newTestMenu(content)

	out, err := m.Select(context.Background(), "1").Render()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Salt &amp; Pepper at &lt;Main&gt;")
}
