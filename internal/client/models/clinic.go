package models

import (
	"strings"

	"github.com/dmitrijs2005/clinicadmin/internal/listing"
	"github.com/dmitrijs2005/clinicadmin/internal/timex"
)

// Patient is a clinic patient.
type Patient struct {
	ID          ID         `json:"_id,omitempty"`
	Firstname   string     `json:"firstname"`
	Lastname    string     `json:"lastname"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Gender      string     `json:"gender,omitempty"`
	DateOfBirth string     `json:"dateOfBirth,omitempty"`
	Branch      string     `json:"branch,omitempty"`
	City        string     `json:"city,omitempty"`
	CreatedAt   timex.Time `json:"createdAt,omitzero"`
}

func (p Patient) Name() string { return joinName(p.Firstname, p.Lastname) }

func (p Patient) ListingFields() listing.Fields {
	return listing.Fields{
		Branch:    firstNonEmpty(p.Branch, p.City),
		Text:      []string{p.Name(), p.Email, p.Phone},
		Timestamp: p.CreatedAt.Time,
	}
}

func (p Patient) RowID() string    { return p.ID.String() }
func (p Patient) Header() []string { return []string{"ID", "NAME", "EMAIL", "PHONE", "BRANCH", "CREATED"} }
func (p Patient) Values() []string {
	return []string{p.ID.String(), p.Name(), p.Email, p.Phone, firstNonEmpty(p.Branch, p.City), formatDay(p.CreatedAt.Time)}
}

// StaffMember is an employee account. Mutations go through encrypted
// endpoints.
type StaffMember struct {
	ID         ID         `json:"_id,omitempty"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Role       string     `json:"role,omitempty"`
	Department string     `json:"department,omitempty"`
	Branch     string     `json:"branch,omitempty"`
	CreatedAt  timex.Time `json:"createdAt,omitzero"`
}

func (s StaffMember) ListingFields() listing.Fields {
	return listing.Fields{
		Branch:    s.Branch,
		Text:      []string{s.Name, s.Email, s.Phone},
		Timestamp: s.CreatedAt.Time,
	}
}

func (s StaffMember) RowID() string { return s.ID.String() }
func (s StaffMember) Header() []string {
	return []string{"ID", "NAME", "EMAIL", "PHONE", "ROLE", "DEPARTMENT", "BRANCH"}
}
func (s StaffMember) Values() []string {
	return []string{s.ID.String(), s.Name, s.Email, s.Phone, s.Role, s.Department, s.Branch}
}

// Therapist is a practitioner offered to patients.
type Therapist struct {
	ID             ID         `json:"_id,omitempty"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Specialization string     `json:"specialization,omitempty"`
	Languages      []string   `json:"languages,omitempty"`
	Branch         string     `json:"branch,omitempty"`
	CreatedAt      timex.Time `json:"createdAt,omitzero"`
}

func (t Therapist) ListingFields() listing.Fields {
	return listing.Fields{
		Branch:    t.Branch,
		Text:      []string{t.Name, t.Email, t.Phone},
		Timestamp: t.CreatedAt.Time,
	}
}

func (t Therapist) RowID() string { return t.ID.String() }
func (t Therapist) Header() []string {
	return []string{"ID", "NAME", "EMAIL", "PHONE", "SPECIALIZATION", "LANGUAGES", "BRANCH"}
}
func (t Therapist) Values() []string {
	return []string{t.ID.String(), t.Name, t.Email, t.Phone, t.Specialization, strings.Join(t.Languages, ", "), t.Branch}
}

// TeamMember is a member of the public-facing team list. Mutations go
// through encrypted endpoints.
type TeamMember struct {
	ID        ID         `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Position  string     `json:"position,omitempty"`
	Location  string     `json:"location,omitempty"`
	CreatedAt timex.Time `json:"createdAt,omitzero"`
}

func (m TeamMember) ListingFields() listing.Fields {
	return listing.Fields{
		Branch:    m.Location,
		Text:      []string{m.Name, m.Email, m.Phone},
		Timestamp: m.CreatedAt.Time,
	}
}

func (m TeamMember) RowID() string    { return m.ID.String() }
func (m TeamMember) Header() []string { return []string{"ID", "NAME", "EMAIL", "PHONE", "POSITION", "LOCATION"} }
func (m TeamMember) Values() []string {
	return []string{m.ID.String(), m.Name, m.Email, m.Phone, m.Position, m.Location}
}

// Branch is a clinic location.
type Branch struct {
	ID        ID         `json:"_id,omitempty"`
	Name      string     `json:"name"`
	City      string     `json:"city"`
	Address   string     `json:"address,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt timex.Time `json:"createdAt,omitzero"`
}

func (b Branch) ListingFields() listing.Fields {
	return listing.Fields{
		Branch:    firstNonEmpty(b.City, b.Name),
		Text:      []string{b.Name, b.Email, b.Phone},
		Timestamp: b.CreatedAt.Time,
	}
}

func (b Branch) RowID() string    { return b.ID.String() }
func (b Branch) Header() []string { return []string{"ID", "NAME", "CITY", "ADDRESS", "PHONE"} }
func (b Branch) Values() []string {
	return []string{b.ID.String(), b.Name, b.City, b.Address, b.Phone}
}

// ChatHistory is one exchange with the chat bot. It lives in the rosa
// system and is read with the rosa token.
type ChatHistory struct {
	ID        ID         `json:"_id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	CreatedAt timex.Time `json:"createdAt,omitzero"`
}

func (c ChatHistory) ListingFields() listing.Fields {
	return listing.Fields{
		Text:      []string{c.Name, c.Email, c.Question},
		Timestamp: c.CreatedAt.Time,
	}
}

func (c ChatHistory) RowID() string    { return c.ID.String() }
func (c ChatHistory) Header() []string { return []string{"ID", "EMAIL", "QUESTION", "DATE"} }
func (c ChatHistory) Values() []string {
	return []string{c.ID.String(), c.Email, truncate(c.Question, 60), formatDay(c.CreatedAt.Time)}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
