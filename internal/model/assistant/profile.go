package assistant

// Profile is the static assistant configuration loaded once at startup.
// It carries no credentials; provider and SMTP settings live in the
// environment-sourced config and are never exposed through a view.
type Profile struct {
	AssistantName      string    `json:"assistantName"`
	OwnerName          string    `json:"ownerName"`
	AccentColor        string    `json:"accentColor"`
	BookingLink        string    `json:"bookingLink"`
	ContactEmail       string    `json:"contactEmail"`
	Phone              string    `json:"phone,omitempty"`
	Website            string    `json:"website,omitempty"`
	RateLimitPerMinute int       `json:"rateLimitPerMinute"`
	AutoShareContact   bool      `json:"autoShareContact"`
	Projects           []Project `json:"projects"`
}

// Project is a portfolio showcase entry surfaced to the widget and woven
// into the assistant's system prompt.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech,omitempty"`
	Link        string   `json:"link,omitempty"`
	Featured    bool     `json:"featured"`
}

// PublicView is the sanitized shape served to any caller. Contact
// details are deliberately absent; they come through ContactView only.
type PublicView struct {
	AssistantName    string `json:"assistantName"`
	AccentColor      string `json:"accentColor"`
	Website          string `json:"website,omitempty"`
	AutoShareContact bool   `json:"autoShareContact"`
	ProjectCount     int    `json:"projectCount"`
}

// ContactView is the consent-gated contact shape.
type ContactView struct {
	Email       string `json:"email"`
	BookingLink string `json:"bookingLink"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
}

// Public returns the sanitized view of the profile.
func (p *Profile) Public() PublicView {
	return PublicView{
		AssistantName:    p.AssistantName,
		AccentColor:      p.AccentColor,
		Website:          p.Website,
		AutoShareContact: p.AutoShareContact,
		ProjectCount:     len(p.Projects),
	}
}

// ProjectList returns showcase projects, optionally only featured ones.
func (p *Profile) ProjectList(featuredOnly bool) []Project {
	if !featuredOnly {
		out := make([]Project, len(p.Projects))
		copy(out, p.Projects)
		return out
	}
	out := make([]Project, 0, len(p.Projects))
	for _, project := range p.Projects {
		if project.Featured {
			out = append(out, project)
		}
	}
	return out
}

// Contact returns the contact view. Serving it is up to the caller; the
// consent gate lives client-side.
func (p *Profile) Contact() ContactView {
	return ContactView{
		Email:       p.ContactEmail,
		BookingLink: p.BookingLink,
		Phone:       p.Phone,
		Website:     p.Website,
	}
}
