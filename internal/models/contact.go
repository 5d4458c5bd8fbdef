package models

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Contact types.
const (
	ContactClient      = "client"
	ContactFournisseur = "fournisseur"
	ContactLesDeux     = "les deux"
)

// Contact is a client or supplier referenced by transactions as the
// payer or payee. The TPS/TVQ numbers appear on generated invoices.
type Contact struct {
	Model
	Nom       string
	Type      string
	Email     string
	Telephone string
	Adresse   string
	NumeroTPS string
	NumeroTVQ string
}

// BeforeSave trims whitespace and validates the contact type.
func (c *Contact) BeforeSave(_ *gorm.DB) error {
	c.Nom = strings.TrimSpace(c.Nom)
	c.Email = strings.TrimSpace(c.Email)
	c.Telephone = strings.TrimSpace(c.Telephone)
	c.Adresse = strings.TrimSpace(c.Adresse)
	c.NumeroTPS = strings.TrimSpace(c.NumeroTPS)
	c.NumeroTVQ = strings.TrimSpace(c.NumeroTVQ)

	if c.Type == "" {
		c.Type = ContactClient
	}

	if !slices.Contains([]string{ContactClient, ContactFournisseur, ContactLesDeux}, c.Type) {
		return fmt.Errorf("%w: %q", ErrContactTypeInvalid, c.Type)
	}

	return nil
}
