package notify

import (
	"context"
	"fmt"

	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// Service sends marketplace notifications to clinic owners.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service. A nil sender disables email.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, logger: logger}
}

// SendRegistrationComplete emails a clinic owner once their registration has
// been activated.
func (s *Service) SendRegistrationComplete(ctx context.Context, toEmail, companyName string) error {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("Bine ati venit pe VetFinder, %s!", companyName)
	body := fmt.Sprintf(`Buna ziua,

Inregistrarea clinicii %s a fost finalizata cu succes. Profilul dumneavoastra
este acum vizibil proprietarilor de animale care cauta servicii veterinare.

Puteti oricand actualiza serviciile, preturile si programul de functionare din
contul dumneavoastra.

Echipa VetFinder`, companyName)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2 style="color: #0ea5e9;">Bine ati venit pe VetFinder!</h2>
<p>Inregistrarea clinicii <strong>%s</strong> a fost finalizata cu succes.</p>
<p>Profilul dumneavoastra este acum vizibil proprietarilor de animale care
cauta servicii veterinare in zona dumneavoastra.</p>
<p style="background: #f0f9ff; padding: 12px; border-radius: 8px; border-left: 4px solid #0ea5e9;">
Puteti oricand actualiza serviciile, preturile si programul de functionare.
</p>
<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">Echipa VetFinder</p>
</div>`, companyName)

	msg := EmailMessage{
		To:      toEmail,
		ToName:  companyName,
		Subject: subject,
		Body:    body,
		HTML:    html,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: registration email: %w", err)
	}

	s.logger.Info("registration email sent", "to", toEmail, "company", companyName)
	return nil
}

// SendAppointmentConfirmation emails a pet owner after booking.
func (s *Service) SendAppointmentConfirmation(ctx context.Context, toEmail, ownerName, companyName, when string) error {
	if s.email == nil {
		return nil
	}

	subject := fmt.Sprintf("Programare confirmata la %s", companyName)
	body := fmt.Sprintf(`Buna ziua %s,

Programarea dumneavoastra la %s pentru %s a fost confirmata.

Echipa VetFinder`, ownerName, companyName, when)

	msg := EmailMessage{
		To:      toEmail,
		ToName:  ownerName,
		Subject: subject,
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: appointment email: %w", err)
	}
	return nil
}
