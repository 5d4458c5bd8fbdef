package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pierremichaudpm/jaxacompta/internal/invoice"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Transaction types.
const (
	TypeDepense   = "dépense"
	TypeRevenu    = "revenu"
	TypeTransfert = "transfert"
)

// Transaction is the central entity: a single income, expense or
// transfer. A revenu transaction with a NumeroFacture is an invoice
// and carries a payment status.
type Transaction struct {
	Model
	DateTransaction time.Time
	Type            string
	Numero          string
	Description     string
	CategorieID     *uint
	Categorie       *Category `json:"-"`
	ProjetID        *uint
	Projet          *Projet `json:"-"`
	ContactID       *uint
	Contact         *Contact `json:"-"`
	CompteID        *uint
	Compte          *CompteBancaire `json:"-"`
	ModePaiement    string
	MontantHT       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TPS             decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TVQ             decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TotalTTC        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Taxable         bool
	StatutFacture   string
	DatePaiement    *time.Time
	NumeroFacture   string
	PieceJointeURL  string
	OCRSource       bool
	OCRConfiance    *float64
	Notes           string
	LignesFacture   string
	Projets         []Projet `gorm:"many2many:transaction_projets" json:"-"`
}

// LigneFacture is one line item on an invoice. Header lines carry no
// monetary values and only group the lines that follow them.
type LigneFacture struct {
	Description  string           `json:"description"`
	Unite        *decimal.Decimal `json:"unite"`
	CoutUnitaire *decimal.Decimal `json:"cout_unitaire"`
	Montant      decimal.Decimal  `json:"montant"`
	IsHeader     bool             `json:"isHeader,omitempty"`
}

// Lignes decodes the serialized invoice line items.
func (t Transaction) Lignes() ([]LigneFacture, error) {
	if t.LignesFacture == "" {
		return nil, nil
	}

	var lignes []LigneFacture
	err := json.Unmarshal([]byte(t.LignesFacture), &lignes)
	return lignes, err
}

// BeforeSave normalizes the record and enforces the tax and invoice
// invariants:
//
//   - a non-taxable transaction has zero TPS and TVQ and its total
//     equals the pre-tax amount
//   - a taxable dépense or revenu always satisfies
//     total_ttc = montant_ht + tps + tvq
//   - a revenu carries a statut_facture exactly when it carries a
//     numero_facture
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Numero = strings.TrimSpace(t.Numero)
	t.Description = strings.TrimSpace(t.Description)
	t.NumeroFacture = strings.TrimSpace(t.NumeroFacture)
	t.Notes = strings.TrimSpace(t.Notes)

	if t.DateTransaction.IsZero() {
		t.DateTransaction = time.Now().In(time.UTC)
	} else {
		t.DateTransaction = t.DateTransaction.In(time.UTC)
	}

	if !slices.Contains([]string{TypeDepense, TypeRevenu, TypeTransfert}, t.Type) {
		return fmt.Errorf("%w: %q", ErrTransactionTypeInvalid, t.Type)
	}

	if !t.Taxable {
		t.TPS = decimal.Zero
		t.TVQ = decimal.Zero
		t.TotalTTC = t.MontantHT
	} else if t.Type != TypeTransfert {
		t.TotalTTC = t.MontantHT.Add(t.TPS).Add(t.TVQ).Round(2)
	}

	if t.Type == TypeRevenu && t.NumeroFacture != "" {
		if t.StatutFacture == "" {
			t.StatutFacture = string(invoice.StatusEnvoyee)
		}

		if !invoice.Valid(invoice.Status(t.StatutFacture)) {
			return fmt.Errorf("%w: %q", invoice.ErrStatusInvalid, t.StatutFacture)
		}
	} else {
		t.StatutFacture = ""
	}

	return nil
}

// BeforeCreate verifies that every referenced resource exists.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.CategorieID != nil {
		if err := tx.First(&Category{}, *t.CategorieID).Error; err != nil {
			return err
		}
	}

	if t.ProjetID != nil {
		if err := tx.First(&Projet{}, *t.ProjetID).Error; err != nil {
			return err
		}
	}

	if t.ContactID != nil {
		if err := tx.First(&Contact{}, *t.ContactID).Error; err != nil {
			return err
		}
	}

	if t.CompteID != nil {
		if err := tx.First(&CompteBancaire{}, *t.CompteID).Error; err != nil {
			return err
		}
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	_ = t.Model.AfterFind(tx)
	t.DateTransaction = t.DateTransaction.In(time.UTC)
	return nil
}
