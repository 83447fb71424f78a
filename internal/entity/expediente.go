package entity

import "context"

const (
	ExpedienteTypeCompraventa = "compraventa"
	ExpedienteTypeDonacion    = "donacion"
	ExpedienteTypeSucesion    = "sucesion"
	ExpedienteTypeOtro        = "otro"

	ExpedienteStatusInicial       = "inicial"
	ExpedienteStatusDocumentacion = "documentacion"
	ExpedienteStatusRevision      = "revision"
	ExpedienteStatusFirma         = "firma"
	ExpedienteStatusCerrado       = "cerrado"
	ExpedienteStatusCancelado     = "cancelado"
)

var (
	ExpedienteTypes    = []string{ExpedienteTypeCompraventa, ExpedienteTypeDonacion, ExpedienteTypeSucesion, ExpedienteTypeOtro}
	ExpedienteStatuses = []string{
		ExpedienteStatusInicial,
		ExpedienteStatusDocumentacion,
		ExpedienteStatusRevision,
		ExpedienteStatusFirma,
		ExpedienteStatusCerrado,
		ExpedienteStatusCancelado,
	}
)

// Expediente is a legal case file for a property transaction. Rows are
// written by back-office processes; this service only reads them.
type Expediente struct {
	ID               string  `json:"id"`
	ClientID         string  `json:"client_id"`
	LeadID           *string `json:"lead_id"`
	PropertyLocation string  `json:"property_location"`
	Type             string  `json:"type"`   // compraventa, donacion, sucesion, otro
	Status           string  `json:"status"` // inicial ... cerrado, cancelado
	Metadata         *string `json:"metadata"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`

	// Filled from LEFT JOINs at read time, never stored on the row.
	ClientName  *string `json:"client_name"`
	ClientEmail *string `json:"client_email"`
	LeadName    *string `json:"lead_name"`
}

// ExpedienteFilter narrows GET /expedientes. Empty fields are ignored and the
// rest are AND-combined.
type ExpedienteFilter struct {
	ClientID string
	Status   string
	Page     Page
}

type ExpedienteRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Expediente, error)
	List(ctx context.Context, filter ExpedienteFilter) ([]*Expediente, int, error)
}
