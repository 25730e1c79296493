package mailer

// Service delivers applicant-facing notifications. Failures are
// logged by callers, never surfaced as request failures.
type Service interface {
	SendDecisionEmail(toEmail, apartmentID string, accepted bool) error
}
