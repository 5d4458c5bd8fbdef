package invoice

import "errors"

// Status is the payment status of an invoice.
type Status string

const (
	StatusAValider  Status = "À valider"
	StatusEnvoyee   Status = "Envoyée"
	StatusPayee     Status = "Payée"
	StatusEnRetard  Status = "En retard"
	StatusEnAttente Status = "En attente"
)

// Statuses lists every known invoice status.
var Statuses = []Status{
	StatusAValider,
	StatusEnvoyee,
	StatusPayee,
	StatusEnRetard,
	StatusEnAttente,
}

var ErrStatusInvalid = errors.New("le statut de facture est invalide")

// Valid reports whether s is a known invoice status.
func Valid(s Status) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}

	return false
}

// Unpaid reports whether an invoice in this status still counts
// towards the outstanding amount.
func (s Status) Unpaid() bool {
	return s != StatusPayee && s != ""
}

// Late reports whether this status makes an aged invoice appear in the
// late invoice list. The 30 day cutoff itself is evaluated at read
// time by the dashboard, never persisted.
func (s Status) Late() bool {
	return s == StatusEnvoyee || s == StatusEnRetard
}
