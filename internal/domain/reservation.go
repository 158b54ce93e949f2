package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusReserved  ReservationStatus = "reserved"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
)

// Reservation is an Order the gateway has acknowledged, held in memory
// until the payment is confirmed or the retention window elapses.
// TransactionID is the sole correlation key between the reserve leg and
// the confirmation callback.
type Reservation struct {
	Order
	TransactionID string
	UserID        string
	Status        ReservationStatus
	ReservedAt    time.Time
	ConfirmedAt   time.Time
}
