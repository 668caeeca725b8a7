package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"folioassist/internal/model/assistant"
)

const defaultRateLimitPerMinute = 10

// LoadProfile reads the assistant profile from the given JSON file and
// applies the environment overrides. Only contact email, booking link
// and the auto-share flag may be overridden; every other field comes
// solely from the file.
func LoadProfile(path string) (*assistant.Profile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve profile path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open profile %s: %w", absPath, err)
	}
	defer file.Close()

	var profile assistant.Profile
	if err := json.NewDecoder(file).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	if profile.AssistantName == "" {
		return nil, fmt.Errorf("assistantName must be configured")
	}
	if profile.RateLimitPerMinute <= 0 {
		profile.RateLimitPerMinute = defaultRateLimitPerMinute
	}

	applyProfileOverrides(&profile)
	return &profile, nil
}

func applyProfileOverrides(profile *assistant.Profile) {
	if email := strings.TrimSpace(os.Getenv("CONTACT_EMAIL")); email != "" {
		profile.ContactEmail = email
	}
	if link := strings.TrimSpace(os.Getenv("BOOKING_LINK")); link != "" {
		profile.BookingLink = link
	}
	if raw := strings.TrimSpace(os.Getenv("AUTO_SHARE_CONTACT")); raw != "" {
		if val, err := strconv.ParseBool(raw); err == nil {
			profile.AutoShareContact = val
		}
	}
}
