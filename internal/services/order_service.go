// internal/services/order_service.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/delivery-storefront/internal/config"
	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/models"
)

// OrderService drives the submission of one session's cart. At most one
// submission is pending at a time; the cart is cleared only once the client
// confirms the messaging link was opened.
type OrderService struct {
	settings config.StorefrontConfig
	cart     *CartService
	ui       *UIState
	notifier Notifier
	lang     string
	window   time.Duration

	mu      sync.Mutex
	pending *pendingSubmission
}

type pendingSubmission struct {
	submission models.Submission
	timer      *time.Timer
}

func NewOrderService(settings config.StorefrontConfig, cart *CartService, ui *UIState, notifier Notifier, lang string) *OrderService {
	window := settings.ConfirmWindow
	if window <= 0 {
		window = 2 * time.Minute
	}
	return &OrderService{
		settings: settings,
		cart:     cart,
		ui:       ui,
		notifier: notifier,
		lang:     lang,
		window:   window,
	}
}

func (s *OrderService) Preview(form models.OrderForm) (*models.ComposedOrder, error) {
	return ComposeOrder(s.settings, s.cart.Lines(), form)
}

// Submit composes the order and holds it pending until Confirm, Cancel or the
// confirmation window elapses. A second Submit while one is pending is rejected.
func (s *OrderService) Submit(form models.OrderForm) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.notifyError(ErrSubmissionInProgress)
		return nil, ErrSubmissionInProgress
	}

	order, err := ComposeOrder(s.settings, s.cart.Lines(), form)
	if err != nil {
		s.notifyError(err)
		return nil, err
	}

	now := time.Now()
	sub := models.Submission{
		ID:        uuid.NewString(),
		Order:     *order,
		Status:    models.SubmissionStatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(s.window),
	}
	id := sub.ID
	s.pending = &pendingSubmission{
		submission: sub,
		timer:      time.AfterFunc(s.window, func() { s.expire(id) }),
	}
	return &sub, nil
}

func (s *OrderService) expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil || s.pending.submission.ID != id {
		return
	}
	s.pending = nil
	logrus.WithField("submission_id", id).Warn("Order submission expired without confirmation")
}

// take removes the pending submission matching id.
func (s *OrderService) take(id string) (models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil || s.pending.submission.ID != id {
		return models.Submission{}, ErrSubmissionNotFound
	}
	s.pending.timer.Stop()
	sub := s.pending.submission
	s.pending = nil
	return sub, nil
}

// Confirm finishes a pending submission. When the link was not opened the
// cart is preserved and a DeepLinkOpenFailure is returned.
func (s *OrderService) Confirm(ctx context.Context, id string, opened bool, reason string) (*models.Submission, error) {
	sub, err := s.take(id)
	if err != nil {
		return nil, err
	}

	if !opened {
		sub.Status = models.SubmissionStatusFailed
		failure := &DeepLinkOpenFailure{SubmissionID: id, Reason: reason}
		s.notifyError(failure)
		logrus.WithFields(logrus.Fields{
			"submission_id": id,
			"reason":        reason,
		}).Warn("Messaging link could not be opened")
		return &sub, failure
	}

	sub.Status = models.SubmissionStatusCompleted
	s.notify(i18n.KeyOrderSent)
	s.cart.Clear(ctx)
	s.ui.HideCheckout()
	logrus.WithFields(logrus.Fields{
		"submission_id": id,
		"total":         sub.Order.Total,
	}).Info("Order submitted")
	return &sub, nil
}

func (s *OrderService) Cancel(id string) (*models.Submission, error) {
	sub, err := s.take(id)
	if err != nil {
		return nil, err
	}
	sub.Status = models.SubmissionStatusCancelled
	return &sub, nil
}

func (s *OrderService) Pending() *models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	sub := s.pending.submission
	return &sub
}

func (s *OrderService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.timer.Stop()
		s.pending = nil
	}
}

func (s *OrderService) notify(key string) {
	if s.notifier != nil {
		s.notifier.Notify(i18n.T(s.lang, key))
	}
}

// notifyError surfaces a rejected submission to the customer.
func (s *OrderService) notifyError(err error) {
	if s.notifier != nil {
		s.notifier.Notify(UserMessage(s.lang, err))
	}
}
