// File: /services/email_service.go
package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"loopline-api/config"
	"loopline-api/events"
)

// EmailService greets users who registered with an email address. Without
// SMTP configuration it stays quiet and everything else works the same.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{config: cfg}
	if cfg.SMTPHost != "" {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return service
}

func (es *EmailService) Enabled() bool {
	return es.dialer != nil
}

// HandleEvent is subscribed on the event bus.
func (es *EmailService) HandleEvent(event interface{}) {
	e, ok := event.(events.UserRegistered)
	if !ok || e.Email == nil {
		return
	}
	if err := es.SendWelcomeEmail(*e.Email, e.Username); err != nil {
		log.Printf("email service: welcome mail to %s failed: %v", *e.Email, err)
	}
}

// SendWelcomeEmail sends the post-registration greeting.
func (es *EmailService) SendWelcomeEmail(email, username string) error {
	if !es.Enabled() {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Loopline! 🎉")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Welcome to Loopline</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #6c5ce7; color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .feature { background: white; padding: 20px; margin: 15px 0; border-radius: 8px; border-left: 4px solid #6c5ce7; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to Loopline!</h1>
            <p>Your loop starts here</p>
        </div>
        <div class="content">
            <h2>Hello %s!</h2>
            <p>🎉 Your Loopline account is ready.</p>

            <div class="feature">
                <h4>✍️ Share Posts</h4>
                <p>Write posts and join the conversation in the comments.</p>
            </div>

            <div class="feature">
                <h4>👥 Build Your Loop</h4>
                <p>Follow people you find interesting and send friend requests to the ones you know.</p>
            </div>

            <div class="feature">
                <h4>⭐ React</h4>
                <p>React to posts and comments to show what you think.</p>
            </div>

            <p>See you in the loop!</p>
            <p><strong>The Loopline Team</strong></p>
        </div>
        <div class="footer">
            <p>© 2025 Loopline. All rights reserved.</p>
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`, username)

	textBody := fmt.Sprintf(`
Hello %s!

🎉 Your Loopline account is ready.

✍️ Share Posts
Write posts and join the conversation in the comments.

👥 Build Your Loop
Follow people you find interesting and send friend requests to the ones you know.

⭐ React
React to posts and comments to show what you think.

See you in the loop!
The Loopline Team

© 2025 Loopline. All rights reserved.
This is an automated email, please do not reply.
    `, username)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	fmt.Printf("📧 Welcome email sent to %s\n", email)
	return nil
}
