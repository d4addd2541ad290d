// internal/service/alerts/service.go
package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-filters/internal/common/errors"
	"storefront-filters/internal/common/logger"
	"storefront-filters/internal/common/metrics"
	"storefront-filters/internal/models"
	alertsrepo "storefront-filters/internal/repository/alerts"
)

// Repo stores subscriptions and tracks which have been notified.
type Repo interface {
	Create(ctx context.Context, alert models.StockAlert) (int64, error)
	Pending(ctx context.Context) ([]alertsrepo.PendingAlert, error)
	MarkNotified(ctx context.Context, alertID int64) error
}

// ProductGetter verifies that a subscription targets a real, visible
// product.
type ProductGetter interface {
	ProductByID(ctx context.Context, productID int64) (*models.Product, error)
}

// Mailer delivers one back-in-stock email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers one back-in-stock SMS. Nil disables the channel.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// Service accepts back-in-stock subscriptions and periodically sweeps for
// restocked products, notifying subscribers once per subscription.
type Service struct {
	repo     Repo
	products ProductGetter
	mailer   Mailer
	sms      SMSSender
	logger   logger.Logger
}

func New(repo Repo, products ProductGetter, mailer Mailer, sms SMSSender, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		mailer:   mailer,
		sms:      sms,
		logger:   log.WithFields(map[string]interface{}{"component": "stock-alerts"}),
	}
}

// Subscribe registers a notification request for an out-of-stock product.
func (s *Service) Subscribe(ctx context.Context, productID int64, email, phone string) (int64, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if email == "" && phone == "" {
		return 0, errors.NewValidationFailedError("either email or phone is required")
	}
	if email != "" && !isValidEmail(email) {
		return 0, errors.NewValidationFailedError(fmt.Sprintf("invalid email address: %s", email))
	}

	if _, err := s.products.ProductByID(ctx, productID); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, models.StockAlert{
		ProductID: productID,
		Email:     email,
		Phone:     phone,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("subscription registered", map[string]interface{}{
		"alertId":   id,
		"productId": productID,
	})
	return id, nil
}

// Sweep notifies every pending subscription whose product is back in
// stock. A failed dispatch stays pending and is retried on the next sweep.
func (s *Service) Sweep(ctx context.Context) error {
	pending, err := s.repo.Pending(ctx)
	if err != nil {
		return err
	}

	for _, alert := range pending {
		if err := s.dispatch(ctx, alert); err != nil {
			s.logger.Error("dispatch failed, will retry next sweep", map[string]interface{}{
				"alertId":   alert.ID,
				"productId": alert.ProductID,
				"error":     err.Error(),
			})
			continue
		}
		if err := s.repo.MarkNotified(ctx, alert.ID); err != nil {
			s.logger.Error("failed to mark alert notified", map[string]interface{}{
				"alertId": alert.ID,
				"error":   err.Error(),
			})
		}
	}
	return nil
}

// Run sweeps on a fixed interval until the context is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", map[string]interface{}{
		"interval": interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped", nil)
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("sweep failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

func (s *Service) dispatch(ctx context.Context, alert alertsrepo.PendingAlert) error {
	message := fmt.Sprintf("%s is back in stock.", alert.ProductName)

	if alert.Email != "" {
		subject := fmt.Sprintf("Back in stock: %s", alert.ProductName)
		if err := s.mailer.Send(ctx, alert.Email, subject, message); err != nil {
			metrics.AlertsDispatched.WithLabelValues("email", "error").Inc()
			return errors.NewNotificationSendFailedError("email", err)
		}
		metrics.AlertsDispatched.WithLabelValues("email", "sent").Inc()
	}

	if alert.Phone != "" && s.sms != nil {
		if err := s.sms.Send(ctx, alert.Phone, message); err != nil {
			metrics.AlertsDispatched.WithLabelValues("sms", "error").Inc()
			return errors.NewNotificationSendFailedError("sms", err)
		}
		metrics.AlertsDispatched.WithLabelValues("sms", "sent").Inc()
	}

	return nil
}

func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}
