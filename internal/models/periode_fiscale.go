package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PeriodeFiscale is a historical tax filing period, populated by the
// initial data import. The quarterly tax report reads it to show the
// amounts already declared.
type PeriodeFiscale struct {
	Model
	Periode   string          `json:"periode"`
	DateDebut time.Time       `json:"date_debut"`
	DateFin   time.Time       `json:"date_fin"`
	TPSPercue decimal.Decimal `json:"tps_percue" gorm:"type:DECIMAL(20,8)"`
	TPSPayee  decimal.Decimal `json:"tps_payee" gorm:"type:DECIMAL(20,8)"`
	TVQPercue decimal.Decimal `json:"tvq_percue" gorm:"type:DECIMAL(20,8)"`
	TVQPayee  decimal.Decimal `json:"tvq_payee" gorm:"type:DECIMAL(20,8)"`
	Reference string          `json:"reference"`
}

func (PeriodeFiscale) TableName() string {
	return "periodes_fiscales"
}

// DeclaredPeriode returns the filed tax period with the given label,
// nil when nothing was declared for it.
func DeclaredPeriode(db *gorm.DB, periode string) (*PeriodeFiscale, error) {
	var p PeriodeFiscale
	err := db.Where(&PeriodeFiscale{Periode: periode}).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}
