package models

// SystemStatus is the backend's lifecycle flag for a registered system.
type SystemStatus string

const (
	SystemActive   SystemStatus = "Active"
	SystemInactive SystemStatus = "Inactive"
)

// AccessLevel describes who may reach a registered system.
type AccessLevel string

const (
	AccessPublic     AccessLevel = "Public"
	AccessRestricted AccessLevel = "Restricted"
	AccessDepartment AccessLevel = "DepartmentSpecific"
)

// System is a backend-owned catalog record. The client never invents or
// infers these fields; timestamps and dates stay in the backend's wire
// format and are passed through unchanged.
type System struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	URL            string       `json:"url"`
	Icon           string       `json:"icon,omitempty"`
	Category       string       `json:"category,omitempty"`
	Tags           []string     `json:"tags"`
	Responsible    string       `json:"responsible,omitempty"`
	Description    string       `json:"description,omitempty"`
	TechStack      string       `json:"techStack,omitempty"`
	ExpirationDate *string      `json:"expirationDate"`
	Dependencies   string       `json:"dependencies,omitempty"`
	Status         SystemStatus `json:"status"`
	AccessLevel    AccessLevel  `json:"accessLevel"`
	CreatedAt      string       `json:"createdAt"`
}

// SystemPatch is the partial update body for PATCH /systems/{id}.
// Empty optional fields are omitted from the wire; ExpirationDate is always
// present and marshals to null when unset, which is how the backend clears
// a previously set date.
type SystemPatch struct {
	Name           string       `json:"name,omitempty"`
	URL            string       `json:"url,omitempty"`
	Icon           string       `json:"icon,omitempty"`
	Category       string       `json:"category,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	Responsible    string       `json:"responsible,omitempty"`
	Description    string       `json:"description,omitempty"`
	TechStack      string       `json:"techStack,omitempty"`
	ExpirationDate *string      `json:"expirationDate"`
	Dependencies   string       `json:"dependencies,omitempty"`
	Status         SystemStatus `json:"status,omitempty"`
	AccessLevel    AccessLevel  `json:"accessLevel,omitempty"`
}
