package organizationbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/types/name"
)

// Organization is the brand identity a workspace can present: colors,
// logo, tone of voice. Several workspaces may share one organization.
type Organization struct {
	ID        uuid.UUID
	Name      name.Name
	Brand     Brand
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Brand carries the free-form identity settings.
type Brand struct {
	LogoURL        string `json:"logoUrl"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	ToneOfVoice    string `json:"toneOfVoice"`
	Website        string `json:"website"`
}

// NewOrganization contains information needed to create an organization.
type NewOrganization struct {
	Name  name.Name
	Brand Brand
}

// UpdateOrganization contains information needed to update an organization.
type UpdateOrganization struct {
	Name  *name.Name
	Brand *Brand
}
