package email

import (
	"context"
	"log"
)

// MockNotifier implements the Notifier interface by logging instead of
// sending. Used when RESEND_API_KEY is not configured.
type MockNotifier struct{}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendWelcome(ctx context.Context, to, username string) error {
	log.Printf("📧 [Dev Mode] Welcome email for %s <%s> skipped (no RESEND_API_KEY)", username, to)
	return nil
}
