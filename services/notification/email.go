package notification

import (
	"context"
	"fmt"
	"time"

	"petbook/models"
	"petbook/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridNotificationService sends appointment emails through SendGrid.
type SendGridNotificationService struct {
	APIKey   string
	From     string
	FromName string
}

// NewSendGridNotificationService validates the configuration and returns the sender.
func NewSendGridNotificationService(apiKey, from, fromName string) (*SendGridNotificationService, error) {
	if apiKey == "" || from == "" {
		return nil, fmt.Errorf("notification service initialization error: SendGrid key or sender address missing")
	}
	return &SendGridNotificationService{APIKey: apiKey, From: from, FromName: fromName}, nil
}

// SendBookingConfirmation emails the owner that the slot is reserved.
func (s *SendGridNotificationService) SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error {
	subject := "Confirmação de Agendamento - Petbook"
	plain := fmt.Sprintf("Seu agendamento de %s em %s às %s foi confirmado.",
		appt.ServiceType, appt.Date, appt.Time)
	html := fmt.Sprintf(`<h2>Olá %s,</h2>
<p>Seu agendamento foi realizado com sucesso!</p>
<p><strong>Detalhes do Agendamento:</strong></p>
<ul>
  <li>Serviço: %s</li>
  <li>Data: %s</li>
  <li>Hora: %s</li>
</ul>
<p>Caso precise cancelar ou reagendar, entre em contato conosco.</p>
<p>Atenciosamente,<br>Equipe Petbook</p>`,
		appt.UserEmail, appt.ServiceType, appt.Date, appt.Time)

	return s.send(ctx, appt.UserEmail, subject, plain, html)
}

// SendAppointmentReminder emails the owner ahead of the scheduled slot.
func (s *SendGridNotificationService) SendAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	subject := "Lembrete de Agendamento - Petbook"
	plain := fmt.Sprintf("Lembrete: você tem um agendamento de %s em %s às %s.",
		appt.ServiceType, appt.Date, appt.Time)
	html := fmt.Sprintf(`<h2>Olá %s,</h2>
<p>Este é um lembrete do seu agendamento:</p>
<ul>
  <li>Serviço: %s</li>
  <li>Data: %s</li>
  <li>Hora: %s</li>
</ul>
<p>Atenciosamente,<br>Equipe Petbook</p>`,
		appt.UserEmail, appt.ServiceType, appt.Date, appt.Time)

	return s.send(ctx, appt.UserEmail, subject, plain, html)
}

func (s *SendGridNotificationService) send(ctx context.Context, recipient, subject, plain, html string) error {
	from := mail.NewEmail(s.FromName, s.From)
	to := mail.NewEmail("", recipient)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	client := sendgrid.NewSendClient(s.APIKey)
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("failed to send email to %s, status code: %d", recipient, response.StatusCode)
	}
	return nil
}

// LogNotificationService is the fallback sender used when SendGrid is not
// configured. It only logs what would have been sent.
type LogNotificationService struct{}

func (LogNotificationService) SendBookingConfirmation(_ context.Context, appt *models.Appointment) error {
	utils.GetLogger().Info("booking confirmation (email disabled)",
		zap.String("email", appt.UserEmail),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))
	return nil
}

func (LogNotificationService) SendAppointmentReminder(_ context.Context, appt *models.Appointment) error {
	utils.GetLogger().Info("appointment reminder (email disabled)",
		zap.String("email", appt.UserEmail),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))
	return nil
}
