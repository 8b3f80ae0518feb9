package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier sends emails through the Resend API.
type ResendNotifier struct {
	client    *resend.Client
	fromEmail string
}

func NewResendNotifier(apiKey, fromEmail string) *ResendNotifier {
	return &ResendNotifier{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (n *ResendNotifier) SendWelcome(ctx context.Context, to, username string) error {
	params := &resend.SendEmailRequest{
		From:    n.fromEmail,
		To:      []string{to},
		Subject: "Welcome to AchieveIt! 🏅",
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Welcome, %s! 🚀</h2>
				<p>Your AchieveIt account is ready. Complete todos to earn XP, level up, and keep your daily streak alive.</p>
				<p style="color: #888; font-size: 14px; margin-top: 16px;">
					Every completed todo is worth 10 XP — your first badge is waiting at 100.
				</p>
			</div>
		`, username),
	}

	sent, err := n.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	log.Printf("📧 Welcome email sent to %s (ID: %s)", to, sent.Id)
	return nil
}
