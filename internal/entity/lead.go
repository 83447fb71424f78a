package entity

import (
	"context"
)

const (
	PropertyTypeCasa         = "casa"
	PropertyTypeDepartamento = "departamento"
	PropertyTypeTerreno      = "terreno"
	PropertyTypeComercial    = "comercial"

	UrgencyAlta  = "alta"
	UrgencyMedia = "media"
	UrgencyBaja  = "baja"

	LeadStatusNuevo      = "nuevo"
	LeadStatusContactado = "contactado"
	LeadStatusConvertido = "convertido"
	LeadStatusPerdido    = "perdido"
)

// Order matters: it is the order reported back in validation messages.
var (
	PropertyTypes = []string{PropertyTypeCasa, PropertyTypeDepartamento, PropertyTypeTerreno, PropertyTypeComercial}
	Urgencies     = []string{UrgencyAlta, UrgencyMedia, UrgencyBaja}
	LeadStatuses  = []string{LeadStatusNuevo, LeadStatusContactado, LeadStatusConvertido, LeadStatusPerdido}
)

// Lead is an inbound inquiry from the public form.
type Lead struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	PropertyLocation string  `json:"property_location"`
	PropertyType     string  `json:"property_type"` // casa, departamento, terreno, comercial
	Urgency          *string `json:"urgency"`       // alta, media, baja
	Status           string  `json:"status"`        // nuevo, contactado, convertido, perdido
	Notes            *string `json:"notes"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`
}

// NewLead builds a lead in its initial state. Timestamps are Unix seconds.
func NewLead(id, name, email, propertyLocation, propertyType string, phone, urgency *string, now int64) *Lead {
	return &Lead{
		ID:               id,
		Name:             name,
		Email:            email,
		Phone:            phone,
		PropertyLocation: propertyLocation,
		PropertyType:     propertyType,
		Urgency:          urgency,
		Status:           LeadStatusNuevo,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// LeadFilter narrows GET /leads. An empty Status means no filter.
type LeadFilter struct {
	Status string
	Page   Page
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, int, error)
}

// IsOneOf reports whether v is in allowed.
func IsOneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
