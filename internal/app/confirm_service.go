package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sumihiro3/hands-on-line-pay/internal/domain"
)

// ConfirmService finalizes a reserved payment when the gateway calls back
// after the user authorized it.
type ConfirmService struct {
	store     ReservationStore
	gateway   PaymentGateway
	messenger Messenger
	log       *logrus.Logger
}

func NewConfirmService(store ReservationStore, gateway PaymentGateway, messenger Messenger, log *logrus.Logger) *ConfirmService {
	return &ConfirmService{
		store:     store,
		gateway:   gateway,
		messenger: messenger,
		log:       log,
	}
}

// ConfirmResult reports the finalized payment.
type ConfirmResult struct {
	TransactionID string `json:"transactionId"`
	OrderID       string `json:"orderId"`
	ProductName   string `json:"productName"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Replayed      bool   `json:"replayed"`
}

// Confirm captures the payment for transactionID. The amount and currency
// always come from the stored reservation, never from the caller, so the
// captured amount matches what was reserved regardless of what the
// callback request claims. A replayed callback for an already-confirmed
// id returns the prior result without touching the gateway again.
func (s *ConfirmService) Confirm(ctx context.Context, transactionID string) (ConfirmResult, error) {
	if transactionID == "" {
		return ConfirmResult{}, domain.ErrMissingTransactionID
	}

	reservation, ok := s.store.Get(transactionID)
	if !ok {
		return ConfirmResult{}, fmt.Errorf("transaction %s: %w", transactionID, domain.ErrReservationNotFound)
	}

	result := ConfirmResult{
		TransactionID: transactionID,
		OrderID:       reservation.OrderID,
		ProductName:   reservation.ProductName,
		Amount:        reservation.Amount,
		Currency:      reservation.Currency,
		Status:        string(domain.ReservationStatusConfirmed),
	}

	if reservation.Status == domain.ReservationStatusConfirmed {
		s.log.WithField("transaction_id", transactionID).Info("replayed confirmation, returning prior result")
		result.Replayed = true
		return result, nil
	}

	if _, err := s.gateway.Confirm(ctx, transactionID, reservation.Amount, reservation.Currency); err != nil {
		return ConfirmResult{}, fmt.Errorf("confirm payment for transaction %s: %w", transactionID, err)
	}

	s.store.MarkConfirmed(transactionID)

	s.log.WithFields(logrus.Fields{
		"transaction_id": transactionID,
		"order_id":       reservation.OrderID,
		"user_id":        reservation.UserID,
		"amount":         reservation.Amount,
		"currency":       reservation.Currency,
	}).Info("payment confirmed")

	if err := s.messenger.Push(ctx, reservation.UserID, completionMessages(reservation.ProductName)...); err != nil {
		// The payment is captured; a lost notification is logged, not rolled back.
		s.log.WithError(err).WithField("transaction_id", transactionID).Error("push completion notice failed")
	}

	return result, nil
}
