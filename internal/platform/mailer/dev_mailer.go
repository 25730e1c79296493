package mailer

import (
	"fmt"

	"github.com/rentloft/rentloft-api/pkg/logger"
)

type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendDecisionEmail(toEmail, apartmentID string, accepted bool) error {
	decision := "rejected"
	if accepted {
		decision = "accepted"
	}

	logger.Info("📧 [DEV MAIL] Application Decision Email",
		"to", toEmail,
		"apartment_id", apartmentID,
		"decision", decision,
	)

	fmt.Printf("\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"📧 APPLICATION DECISION EMAIL (DEV MODE)\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"To: %s\n"+
		"Subject: Your Rent Loft application was %s\n"+
		"\n"+
		"Apartment: %s\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n",
		toEmail, decision, apartmentID)

	return nil
}
