package email

// WelcomeSubject is the subject line of the welcome email.
const WelcomeSubject = "Welcome to the Account Service!"

// SendWelcomeEmail sends a welcome email to a newly created account.
func (c *Client) SendWelcomeEmail(to, name string) error {
	data := map[string]string{
		"Name": name,
	}

	return c.SendEmail(to, WelcomeSubject, TemplateWelcome, data)
}
