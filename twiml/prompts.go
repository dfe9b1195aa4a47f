// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twiml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Prompts holds every sentence the IVR speaks plus voice settings.
// Fields missing from a prompts file keep their default.
type Prompts struct {
	Voice    string `yaml:"voice"`
	Language string `yaml:"language"`

	// GatherTimeout is how long to wait for a key press, in seconds
	GatherTimeout int `yaml:"gather_timeout"`
	// LeafPause is the silence after a leaf before returning to the menu
	LeafPause int `yaml:"leaf_pause"`
	// ItemLimit caps how many prices, schedules or alerts a leaf reads out
	ItemLimit int `yaml:"item_limit"`

	Welcome  string `yaml:"welcome"`
	MainMenu string `yaml:"main_menu"`
	NoInput  string `yaml:"no_input"`
	Invalid  string `yaml:"invalid"`
	Goodbye  string `yaml:"goodbye"`
	Help     string `yaml:"help"`

	PricesIntro    string `yaml:"prices_intro"`
	NoPrices       string `yaml:"no_prices"`
	SchedulesIntro string `yaml:"schedules_intro"`
	NoSchedules    string `yaml:"no_schedules"`
	AlertsIntro    string `yaml:"alerts_intro"`
	NoAlerts       string `yaml:"no_alerts"`
	Unavailable    string `yaml:"unavailable"`
}

// DefaultPrompts returns the built-in English prompts
func DefaultPrompts() Prompts {
	return Prompts{
		Voice:         "alice",
		Language:      "en-US",
		GatherTimeout: 5,
		LeafPause:     1,
		ItemLimit:     5,

		Welcome:  "Welcome to VoiceLink, your community information line.",
		MainMenu: "For market prices, press 1. For transport schedules, press 2. For community alerts, press 3. For help, press 4. To repeat this menu, press 0. To end the call, press 9.",
		NoInput:  "We did not receive any input.",
		Invalid:  "Sorry, that is not a valid option.",
		Goodbye:  "Thank you for calling VoiceLink. Goodbye.",
		Help:     "VoiceLink shares market prices, transport schedules and community alerts, updated by local moderators. To reach a moderator, use the contact form on the VoiceLink website.",

		PricesIntro:    "Here are the latest market prices.",
		NoPrices:       "There are no market prices available right now.",
		SchedulesIntro: "Here are the current transport schedules.",
		NoSchedules:    "There are no transport schedules available right now.",
		AlertsIntro:    "Here are the current community alerts.",
		NoAlerts:       "There are no active community alerts.",
		Unavailable:    "Sorry, this information is unavailable right now. Please try again later.",
	}
}

// LoadPrompts reads YAML overrides from path on top of DefaultPrompts.
// An empty path returns the defaults.
func LoadPrompts(path string) (Prompts, error) {
	p := DefaultPrompts()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Prompts{}, fmt.Errorf("failed to read prompts file: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prompts{}, fmt.Errorf("failed to parse prompts file %s: %w", path, err)
	}

	if err := p.validate(); err != nil {
		return Prompts{}, fmt.Errorf("invalid prompts file %s: %w", path, err)
	}

	return p, nil
}

func (p Prompts) validate() error {
	if p.GatherTimeout <= 0 {
		return fmt.Errorf("gather_timeout must be positive, got %d", p.GatherTimeout)
	}
	if p.LeafPause < 0 {
		return fmt.Errorf("leaf_pause must not be negative, got %d", p.LeafPause)
	}
	if p.ItemLimit <= 0 {
		return fmt.Errorf("item_limit must be positive, got %d", p.ItemLimit)
	}
	if p.Welcome == "" && p.MainMenu == "" {
		return fmt.Errorf("welcome and main_menu cannot both be empty")
	}
	return nil
}
