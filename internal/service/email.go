package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendRentalConfirmation(ctx context.Context, email, name, bikeName, rentalRef string, totalCents, depositCents int32) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s for %s is confirmed.\n\nTotal: %s\nDeposit: %s\n\nSee you at the shop!\nThe Bike Shop Team",
		name, rentalRef, bikeName, formatCents(totalCents), formatCents(depositCents))
	return s.send(email, fmt.Sprintf("Rental confirmed - %s", rentalRef), body)
}

func (s *emailService) SendReturnConfirmation(ctx context.Context, email, name, rentalRef string, lateFeeCents int32) error {
	body := fmt.Sprintf("Hello %s,\n\nThanks for returning your bike. Rental %s is now closed.", name, rentalRef)
	if lateFeeCents > 0 {
		body += fmt.Sprintf("\n\nA late return fee of %s applies.", formatCents(lateFeeCents))
	}
	body += "\n\nHope to see you again!\nThe Bike Shop Team"
	return s.send(email, fmt.Sprintf("Rental returned - %s", rentalRef), body)
}

func (s *emailService) SendCancellationNotice(ctx context.Context, email, name, rentalRef, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s has been cancelled.", name, rentalRef)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nThe Bike Shop Team"
	return s.send(email, fmt.Sprintf("Rental cancelled - %s", rentalRef), body)
}

func (s *emailService) SendExtensionConfirmation(ctx context.Context, email, name, rentalRef string, newEnd time.Time, extensionCents int32) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s has been extended until %s.\n\nAdditional charge: %s\n\nThe Bike Shop Team",
		name, rentalRef, newEnd.Format("Mon, 02 Jan 2006 15:04"), formatCents(extensionCents))
	return s.send(email, fmt.Sprintf("Rental extended - %s", rentalRef), body)
}

func (s *emailService) SendOverdueNotice(ctx context.Context, email, name, rentalRef string, overdueDays, lateFeeCents int32) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s is %d day(s) overdue. Please return the bike as soon as possible.\n\nLate fees so far: %s\n\nThe Bike Shop Team",
		name, rentalRef, overdueDays, formatCents(lateFeeCents))
	return s.send(email, fmt.Sprintf("Overdue rental - %s", rentalRef), body)
}

func formatCents(cents int32) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
