package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrProjetCodeNotUnique    = errors.New("the project code must be unique")
	ErrCompteCodeNotUnique    = errors.New("the account code must be unique")
	ErrTransactionTypeInvalid = errors.New("the transaction type must be one of dépense, revenu, transfert")
	ErrContactTypeInvalid     = errors.New("the contact type must be one of client, fournisseur, les deux")
)
