package domain

import "errors"

var (
	ErrMissingTransactionID = errors.New("transaction id not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrProductNotFound      = errors.New("product not found")
)
