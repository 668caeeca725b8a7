// Package intent derives response metadata from reply text alone. The
// detection is keyword-based on purpose: it must be a pure function of
// the text so it stays testable without a completion provider.
package intent

import (
	"regexp"
	"strings"
)

// Followup actions the widget understands.
const (
	ActionContact = "contact"
	ActionBooking = "booking"
	ActionHandoff = "handoff"
)

// ContactRefs holds the configured contact identifiers whose presence in
// a reply counts as sharing contact details.
type ContactRefs struct {
	Email       string
	Phone       string
	BookingLink string
}

// Detection is the metadata attached to every assistant reply.
type Detection struct {
	ContactShared   bool     `json:"contactShared"`
	FollowupActions []string `json:"followupActions"`
}

var phonePattern = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)

var followupKeywords = map[string][]string{
	ActionContact: {
		"email me", "send an email", "reach out", "get in touch", "contact",
		"drop a line", "write to",
	},
	ActionBooking: {
		"book a call", "book a slot", "schedule", "calendar", "booking",
		"set up a call", "pick a time",
	},
	ActionHandoff: {
		"leave your details", "leave your email", "pass along", "pass your",
		"connect you", "put you in touch", "follow up with you", "share your contact",
	},
}

// followupOrder keeps the action set stable for clients and tests.
var followupOrder = []string{ActionContact, ActionBooking, ActionHandoff}

// Analyze inspects reply text for shared contact identifiers and
// followup cues. It never looks at anything but the text and the
// configured references.
func Analyze(reply string, refs ContactRefs) Detection {
	normalized := strings.ToLower(reply)

	detection := Detection{FollowupActions: []string{}}
	detection.ContactShared = containsContact(normalized, reply, refs)

	for _, action := range followupOrder {
		for _, keyword := range followupKeywords[action] {
			if strings.Contains(normalized, keyword) {
				detection.FollowupActions = append(detection.FollowupActions, action)
				break
			}
		}
	}

	return detection
}

func containsContact(normalized, raw string, refs ContactRefs) bool {
	if refs.Email != "" && strings.Contains(normalized, strings.ToLower(refs.Email)) {
		return true
	}
	if refs.BookingLink != "" && strings.Contains(normalized, strings.ToLower(refs.BookingLink)) {
		return true
	}
	if refs.Phone != "" && phonePattern.MatchString(raw) {
		return true
	}
	return false
}
