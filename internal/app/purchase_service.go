package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sumihiro3/hands-on-line-pay/internal/clock"
	"github.com/sumihiro3/hands-on-line-pay/internal/domain"
	"github.com/sumihiro3/hands-on-line-pay/internal/linebot"
	"github.com/sumihiro3/hands-on-line-pay/internal/linepay"
)

// PaymentGateway is the slice of the LINE Pay client the services need.
type PaymentGateway interface {
	Reserve(ctx context.Context, req linepay.ReserveRequest) (linepay.ReserveInfo, error)
	Confirm(ctx context.Context, transactionID string, amount int64, currency string) (linepay.ConfirmInfo, error)
}

// Messenger is the slice of the Messaging API client the services need.
type Messenger interface {
	Reply(ctx context.Context, replyToken string, messages ...linebot.Message) error
	Push(ctx context.Context, userID string, messages ...linebot.Message) error
}

// ReservationStore keeps in-flight reservations keyed by the gateway
// transaction id.
type ReservationStore interface {
	Put(transactionID string, res domain.Reservation)
	Get(transactionID string) (domain.Reservation, bool)
	MarkConfirmed(transactionID string) bool
}

// RedirectURLs are the endpoints LINE Pay sends the user back to. The
// gateway appends the transaction id as a query parameter.
type RedirectURLs struct {
	Confirm string
	Cancel  string
}

// PurchaseService routes inbound chat events: it recognizes a purchase
// intent, reserves the payment and replies with a pay-now link.
type PurchaseService struct {
	gateway   PaymentGateway
	messenger Messenger
	store     ReservationStore
	catalog   domain.Catalog
	redirects RedirectURLs
	clock     clock.Clock
	log       *logrus.Logger
}

func NewPurchaseService(
	gateway PaymentGateway,
	messenger Messenger,
	store ReservationStore,
	catalog domain.Catalog,
	redirects RedirectURLs,
	clk clock.Clock,
	log *logrus.Logger,
) *PurchaseService {
	return &PurchaseService{
		gateway:   gateway,
		messenger: messenger,
		store:     store,
		catalog:   catalog,
		redirects: redirects,
		clock:     clk,
		log:       log,
	}
}

// HandleEvent processes one webhook event. Webhook delivery is
// at-least-once, so the same message may arrive twice; each delivery makes
// its own reservation and the unpaid one ages out of the store.
func (s *PurchaseService) HandleEvent(ctx context.Context, event linebot.Event) error {
	if event.IsConnectivityProbe() {
		s.log.Debug("ignoring connectivity probe")
		return nil
	}
	if event.Type != linebot.EventTypeMessage || event.Message == nil || event.Message.Type != "text" {
		return nil
	}

	product, ok := s.catalog.FindByName(event.Message.Text)
	if !ok {
		return nil
	}

	order := domain.Order{
		ProductID:   product.ID,
		ProductName: product.Name,
		Amount:      product.Amount,
		Currency:    product.Currency,
		ImageURL:    product.ImageURL,
		OrderID:     uuid.NewString(),
		ConfirmURL:  s.redirects.Confirm,
		CancelURL:   s.redirects.Cancel,
	}

	info, err := s.gateway.Reserve(ctx, linepay.ReserveRequest{
		ProductName:     order.ProductName,
		ProductImageURL: order.ImageURL,
		Amount:          order.Amount,
		Currency:        order.Currency,
		OrderID:         order.OrderID,
		ConfirmURL:      order.ConfirmURL,
		ConfirmURLType:  "SERVER",
		CancelURL:       order.CancelURL,
	})
	if err != nil {
		return fmt.Errorf("reserve payment for order %s: %w", order.OrderID, err)
	}

	reservation := domain.Reservation{
		Order:         order,
		TransactionID: info.TransactionID,
		UserID:        event.Source.UserID,
		Status:        domain.ReservationStatusReserved,
		ReservedAt:    s.clock.Now(),
	}
	s.store.Put(info.TransactionID, reservation)

	s.log.WithFields(logrus.Fields{
		"transaction_id": info.TransactionID,
		"order_id":       order.OrderID,
		"user_id":        reservation.UserID,
		"amount":         order.Amount,
		"currency":       order.Currency,
	}).Info("reservation made")

	if err := s.messenger.Reply(ctx, event.ReplyToken, payNowMessage(product, info.PaymentURL)); err != nil {
		// The reservation is already committed; delivery failure is not rolled back.
		return fmt.Errorf("reply with payment link for transaction %s: %w", info.TransactionID, err)
	}
	return nil
}
