package http

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// HandleCancel returns the handler for the redirect LINE Pay invokes when
// the user backs out of the payment screen. The reservation is left in
// the store and ages out by TTL.
func HandleCancel(log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		log.WithField("transaction_id", r.URL.Query().Get("transactionId")).Info("payment cancelled by user")

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("payment cancelled"))
	}
}
