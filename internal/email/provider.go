// Package email provides email provider interface.
package email

import (
	"context"
	"fmt"
)

type Provider interface {
	SendEmail(ctx context.Context, email *Email) error
	ValidateAPIKey(ctx context.Context) error
}

type Email struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

type Config struct {
	Provider string
	APIKey   string
	From     string
	Domain   string // For Mailgun
	BaseURL  string // For Mailgun
}

func NewProvider(config Config) (Provider, error) {
	switch config.Provider {
	case "mailgun":
		baseURL := config.BaseURL
		if baseURL == "" {
			baseURL = "https://api.mailgun.net/v3"
		}
		return NewMailgunProviderWithBaseURL(config.APIKey, config.Domain, config.From, baseURL), nil
	case "resend":
		return NewResendProvider(config.APIKey, config.From), nil
	default:
		return nil, fmt.Errorf("EMAIL_PROVIDER must be either 'resend' or 'mailgun'")
	}
}
