package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/sumihiro3/hands-on-line-pay/internal/app"
	"github.com/sumihiro3/hands-on-line-pay/internal/domain"
)

// PaymentConfirmer is the minimal interface needed to finalize a payment.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, transactionID string) (app.ConfirmResult, error)
}

// HandleConfirm returns the handler for the redirect LINE Pay invokes
// after the user authorizes the payment. Any amount or currency in the
// query string is ignored; the service confirms with the reserved values.
func HandleConfirm(svc PaymentConfirmer, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		transactionID := r.URL.Query().Get("transactionId")

		result, err := svc.Confirm(r.Context(), transactionID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrMissingTransactionID):
				http.Error(w, "Transaction Id not found.", http.StatusBadRequest)
			case errors.Is(err, domain.ErrReservationNotFound):
				http.Error(w, "Reservation not found.", http.StatusBadRequest)
			default:
				log.WithError(err).Error("payment confirmation failed")
				http.Error(w, "payment confirmation failed", http.StatusBadGateway)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(result)
	}
}
