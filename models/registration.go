package models

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldCheckbox FieldType = "checkbox"
	FieldFile     FieldType = "file"
)

// RegistrationProgram is an admin-defined, sluggable form configuration for
// an event or sport.
type RegistrationProgram struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	SportSlug *string `json:"sport_slug,omitempty"`
	WaiverURL *string `json:"waiver_url,omitempty"`
	Active    bool    `json:"active"`
}

// RegistrationField is one field definition of a program's form, rendered in
// Order position.
type RegistrationField struct {
	ID          string    `json:"id"`
	ProgramID   string    `json:"program_id"`
	Label       string    `json:"label"`
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Placeholder *string   `json:"placeholder,omitempty"`
	Help        *string   `json:"help,omitempty"`
	Order       int       `json:"order"`
}

// RegistrationSubmission is a completed form. Answers is keyed by field name;
// file answers hold the stored blob path (a single string, or a list when the
// field got multiple files).
type RegistrationSubmission struct {
	ProgramID      string                 `json:"program_id"`
	SportSlug      *string                `json:"sport_slug,omitempty"`
	UserID         string                 `json:"user_id"`
	Answers        map[string]interface{} `json:"answers"`
	Attachments    []string               `json:"attachments"`
	WaiverAccepted bool                   `json:"waiver_accepted"`
	ReferralSource string                 `json:"referral_source"`
}
