package organizationapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/organizationbus"
	"github.com/planora/planora/business/types/name"
)

// Brand carries the free-form identity settings.
type Brand struct {
	LogoURL        string `json:"logoUrl"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	ToneOfVoice    string `json:"toneOfVoice"`
	Website        string `json:"website" validate:"omitempty,url"`
}

// Organization represents a brand identity.
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       Brand  `json:"brand"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (o Organization) Encode() ([]byte, string, error) {
	data, err := json.Marshal(o)
	return data, "application/json", err
}

func toAppOrganization(bus organizationbus.Organization) Organization {
	return Organization{
		ID:   bus.ID.String(),
		Name: bus.Name.String(),
		Brand: Brand{
			LogoURL:        bus.Brand.LogoURL,
			PrimaryColor:   bus.Brand.PrimaryColor,
			SecondaryColor: bus.Brand.SecondaryColor,
			ToneOfVoice:    bus.Brand.ToneOfVoice,
			Website:        bus.Brand.Website,
		},
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toBusBrand(app Brand) organizationbus.Brand {
	return organizationbus.Brand{
		LogoURL:        app.LogoURL,
		PrimaryColor:   app.PrimaryColor,
		SecondaryColor: app.SecondaryColor,
		ToneOfVoice:    app.ToneOfVoice,
		Website:        app.Website,
	}
}

// NewOrganization defines the data needed to create an organization.
type NewOrganization struct {
	Name  string `json:"name" validate:"required"`
	Brand Brand  `json:"brand"`
}

// Decode implements the web.Decoder interface.
func (app *NewOrganization) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewOrganization) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewOrganization(app NewOrganization) (organizationbus.NewOrganization, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return organizationbus.NewOrganization{}, fmt.Errorf("parse name: %w", err)
	}

	bus := organizationbus.NewOrganization{
		Name:  nme,
		Brand: toBusBrand(app.Brand),
	}

	return bus, nil
}

// UpdateOrganization defines the data needed to update an organization.
type UpdateOrganization struct {
	Name  *string `json:"name"`
	Brand *Brand  `json:"brand"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateOrganization) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateOrganization) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateOrganization(app UpdateOrganization) (organizationbus.UpdateOrganization, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return organizationbus.UpdateOrganization{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var brand *organizationbus.Brand
	if app.Brand != nil {
		b := toBusBrand(*app.Brand)
		brand = &b
	}

	bus := organizationbus.UpdateOrganization{
		Name:  nme,
		Brand: brand,
	}

	return bus, nil
}
