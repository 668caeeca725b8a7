package ai

import (
	"fmt"
	"strings"

	"folioassist/internal/model/assistant"
)

// BuildSystemPrompt assembles the assistant's system prompt from the
// profile: identity, the project showcase, and the contact policy.
func BuildSystemPrompt(profile *assistant.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, the assistant embedded in %s's portfolio site.\n",
		profile.AssistantName, profile.OwnerName)
	b.WriteString("Answer questions about the work showcased below. Keep replies short, concrete and friendly. Do not invent projects or skills that are not listed.\n")

	if len(profile.Projects) > 0 {
		b.WriteString("\nShowcased projects:\n")
		for _, project := range profile.Projects {
			fmt.Fprintf(&b, "- %s: %s", project.Title, project.Description)
			if len(project.Tech) > 0 {
				fmt.Fprintf(&b, " (built with %s)", strings.Join(project.Tech, ", "))
			}
			if project.Link != "" {
				fmt.Fprintf(&b, " [%s]", project.Link)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nContact policy:\n")
	if profile.AutoShareContact {
		fmt.Fprintf(&b, "- When a visitor asks how to reach %s, share the email %s", profile.OwnerName, profile.ContactEmail)
		if profile.BookingLink != "" {
			fmt.Fprintf(&b, " and the booking link %s", profile.BookingLink)
		}
		b.WriteString(".\n")
	} else {
		b.WriteString("- Do not volunteer direct contact details. Instead suggest leaving their own details so the owner can follow up.\n")
	}
	b.WriteString("- For project inquiries suggest leaving a name and email so the owner can get back to them.\n")

	return b.String()
}
