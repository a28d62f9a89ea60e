package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/filsox/store-api/internal/config"
	"github.com/filsox/store-api/internal/events"
	"github.com/filsox/store-api/internal/repository"
)

// NotificationService emails customers about pickup-ready and completed
// tickets. Every send failure is logged and swallowed: mail is best-effort
// and must never roll back the state change that triggered it.
type NotificationService struct {
	smtp      config.SMTPConfig
	tracking  config.TrackingConfig
	tickets   repository.TicketRepository
	customers repository.CustomerRepository
	logger    *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(smtp config.SMTPConfig, tracking config.TrackingConfig, tickets repository.TicketRepository, customers repository.CustomerRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{smtp: smtp, tracking: tracking, tickets: tickets, customers: customers, logger: logger}
}

// RegisterHandlers subscribes the service to lifecycle events.
func (s *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTicketCompleted, s.handleCompleted)
	dispatcher.Subscribe(events.EventTicketArrived, s.handleArrived)
}

func (s *NotificationService) handleCompleted(ctx context.Context, event events.Event) error {
	subject := fmt.Sprintf("Seu conserto %s está pronto", event.TicketNumber)
	body := fmt.Sprintf(
		"O serviço da ordem %s foi concluído e o equipamento está disponível para retirada.\n\nAcompanhe em: %s",
		event.TicketNumber, s.trackingURL(event.TicketNumber),
	)
	return s.notify(ctx, event, subject, body)
}

func (s *NotificationService) handleArrived(ctx context.Context, event events.Event) error {
	subject := fmt.Sprintf("Equipamento da ordem %s retornou da garantia", event.TicketNumber)
	body := fmt.Sprintf(
		"O equipamento da ordem %s voltou da assistência e aguarda retirada na loja.\n\nAcompanhe em: %s",
		event.TicketNumber, s.trackingURL(event.TicketNumber),
	)
	return s.notify(ctx, event, subject, body)
}

func (s *NotificationService) notify(ctx context.Context, event events.Event, subject, body string) error {
	if !s.smtp.Enabled() {
		return nil
	}
	ticket, err := s.tickets.GetByNumber(ctx, event.StoreID, event.TicketNumber)
	if err != nil || ticket.CustomerDocument == "" {
		return nil
	}
	customer, err := s.customers.GetByDocument(ctx, event.StoreID, ticket.CustomerDocument)
	if err != nil || customer.Email == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.smtp.From)
	msg.SetHeader("To", customer.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(s.smtp.Host, s.smtp.Port, s.smtp.Username, s.smtp.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		s.logger.Warn("notification send failed",
			zap.String("ticket_number", event.TicketNumber),
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("notification sent",
		zap.String("ticket_number", event.TicketNumber),
		zap.String("event_type", string(event.Type)),
	)
	return nil
}

func (s *NotificationService) trackingURL(number string) string {
	return fmt.Sprintf("%s/%s", s.tracking.BaseURL, number)
}
