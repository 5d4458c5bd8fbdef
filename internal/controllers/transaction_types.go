package controllers

import (
	"time"

	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/pierremichaudpm/jaxacompta/internal/tax"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	DateTransaction time.Time        `json:"date_transaction" time_format:"2006-01-02" example:"2025-06-15"`
	Type            string           `json:"type" example:"dépense" enums:"dépense,revenu,transfert"`
	Numero          string           `json:"numero" example:"TX-0042" default:""`
	Description     string           `json:"description" example:"Location caméra" default:""`
	CategorieID     *uint            `json:"categorie_id"`
	ProjetID        *uint            `json:"projet_id"`
	ContactID       *uint            `json:"contact_id"`
	CompteID        *uint            `json:"compte_id"`
	ModePaiement    string           `json:"mode_paiement" example:"Carte de crédit" default:""`
	MontantHT       decimal.Decimal  `json:"montant_ht" example:"450.00"`
	TPS             decimal.Decimal  `json:"tps" example:"22.50"`
	TVQ             decimal.Decimal  `json:"tvq" example:"44.89"`
	TotalTTC        decimal.Decimal  `json:"total_ttc" example:"517.39"`
	Taxable         bool             `json:"taxable" example:"true"`
	StatutFacture   string           `json:"statut_facture" example:"Envoyée" default:""`
	DatePaiement    *time.Time       `json:"date_paiement"`
	NumeroFacture   string           `json:"numero_facture" example:"JAXA_04-15062025" default:""`
	PieceJointeURL  string           `json:"piece_jointe_url" default:""`
	OCRSource       bool             `json:"ocr_source" default:"false"`
	OCRConfiance    *float64         `json:"ocr_confiance"`
	Notes           string           `json:"notes" default:""`
	LignesFacture   string           `json:"lignes_facture" default:""`
	ProjetsIDs      []uint           `json:"projets_ids"`
}

// model returns the database resource for the API representation of
// the editable fields. The monetary fields go through the tax engine
// so that a stored transaction always reconciles: the supplied taxes
// are kept when set, computed at the Quebec rates when the client
// sends a taxable amount without them.
func (editable TransactionEditable) model() models.Transaction {
	var breakdown tax.Breakdown
	if editable.Taxable && editable.TPS.IsZero() && editable.TVQ.IsZero() {
		breakdown = tax.Compute(editable.MontantHT, editable.Taxable, tax.RegimeTPSTVQ)
	} else {
		breakdown = tax.Reconcile(editable.MontantHT, editable.TPS, editable.TVQ, editable.Taxable)
	}

	transaction := models.Transaction{
		DateTransaction: editable.DateTransaction,
		Type:            editable.Type,
		Numero:          editable.Numero,
		Description:     editable.Description,
		CategorieID:     editable.CategorieID,
		ProjetID:        editable.ProjetID,
		ContactID:       editable.ContactID,
		CompteID:        editable.CompteID,
		ModePaiement:    editable.ModePaiement,
		MontantHT:       breakdown.MontantHT,
		TPS:             breakdown.TPS,
		TVQ:             breakdown.TVQ,
		TotalTTC:        breakdown.TotalTTC,
		Taxable:         editable.Taxable,
		StatutFacture:   editable.StatutFacture,
		DatePaiement:    editable.DatePaiement,
		NumeroFacture:   editable.NumeroFacture,
		PieceJointeURL:  editable.PieceJointeURL,
		OCRSource:       editable.OCRSource,
		OCRConfiance:    editable.OCRConfiance,
		Notes:           editable.Notes,
		LignesFacture:   editable.LignesFacture,
	}

	for _, id := range editable.ProjetsIDs {
		transaction.Projets = append(transaction.Projets, models.Projet{Model: models.Model{ID: id}})
	}

	return transaction
}

// Transaction is the API representation of a transaction. The joined
// names are flattened onto the record so the frontend can render
// lists without extra requests.
type Transaction struct {
	models.Model
	TransactionEditable
	CategorieNom     string `json:"categorie_nom,omitempty"`
	ProjetCode       string `json:"projet_code,omitempty"`
	ProjetNom        string `json:"projet_nom,omitempty"`
	ContactNom       string `json:"contact_nom,omitempty"`
	ContactEmail     string `json:"contact_email,omitempty"`
	ContactTelephone string `json:"contact_telephone,omitempty"`
	ContactAdresse   string `json:"contact_adresse,omitempty"`
	CompteNom        string `json:"compte_nom,omitempty"`
}

// newTransaction returns the API representation of the resource
func newTransaction(model models.Transaction) Transaction {
	var projetsIDs []uint
	for _, projet := range model.Projets {
		projetsIDs = append(projetsIDs, projet.ID)
	}

	transaction := Transaction{
		Model: model.Model,
		TransactionEditable: TransactionEditable{
			DateTransaction: model.DateTransaction,
			Type:            model.Type,
			Numero:          model.Numero,
			Description:     model.Description,
			CategorieID:     model.CategorieID,
			ProjetID:        model.ProjetID,
			ContactID:       model.ContactID,
			CompteID:        model.CompteID,
			ModePaiement:    model.ModePaiement,
			MontantHT:       model.MontantHT,
			TPS:             model.TPS,
			TVQ:             model.TVQ,
			TotalTTC:        model.TotalTTC,
			Taxable:         model.Taxable,
			StatutFacture:   model.StatutFacture,
			DatePaiement:    model.DatePaiement,
			NumeroFacture:   model.NumeroFacture,
			PieceJointeURL:  model.PieceJointeURL,
			OCRSource:       model.OCRSource,
			OCRConfiance:    model.OCRConfiance,
			Notes:           model.Notes,
			LignesFacture:   model.LignesFacture,
			ProjetsIDs:      projetsIDs,
		},
	}

	if model.Categorie != nil {
		transaction.CategorieNom = model.Categorie.Nom
	}

	if model.Projet != nil {
		transaction.ProjetCode = model.Projet.Code
		transaction.ProjetNom = model.Projet.Nom
	}

	if model.Contact != nil {
		transaction.ContactNom = model.Contact.Nom
		transaction.ContactEmail = model.Contact.Email
		transaction.ContactTelephone = model.Contact.Telephone
		transaction.ContactAdresse = model.Contact.Adresse
	}

	if model.Compte != nil {
		transaction.CompteNom = model.Compte.Nom
	}

	return transaction
}

// TransactionListResponse is the paginated transaction list. The
// total is the number of rows the filter matches, not the number
// returned.
type TransactionListResponse struct {
	Rows  []Transaction `json:"rows"`
	Total int64         `json:"total"`
}

// TransactionQueryFilter contains the filters for the transaction
// list. Every filter is optional and they combine with AND.
type TransactionQueryFilter struct {
	Q         string    `form:"q" filterField:"false"`                                          // Matches the description or the contact name
	Projet    uint      `form:"projet" filterField:"false"`                                     // ID of a project, primary or secondary
	Categorie uint      `form:"categorie" filterField:"false"`                                  // ID of the category
	Compte    uint      `form:"compte" filterField:"false"`                                     // ID of the bank account
	Type      string    `form:"type" filterField:"false"`                                       // Transaction type
	From      time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" filterField:"false"` // Transactions at and after this date
	To        time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" filterField:"false"`   // Transactions before and at this date
	Offset    uint      `form:"offset" filterField:"false"`                                     // The offset of the first row returned. Defaults to 0.
	Limit     int       `form:"limit" filterField:"false"`                                      // Maximum number of rows to return. Defaults to 50.
}
