package email

import "context"

// Notifier sends account-lifecycle emails. The abstraction allows swapping
// the real Resend client for a mock in development and tests.
type Notifier interface {
	SendWelcome(ctx context.Context, to, username string) error
}
