// Package email provides email templates.
package email

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
)

// QuoteInfo contains all the information needed for quote and order email
// templates. Amount is pre-formatted with its currency symbol.
type QuoteInfo struct {
	OrderID     string
	ClientName  string
	ClientEmail string
	AdminEmail  string
	SiteName    string
	SiteURL     string
	ProjectType string
	Features    []string
	Amount      string
	TotalDays   int
	Deadline    string
	Budget      string
	Details     string
	PaymentLink string
}

// FeatureList renders the selected features as a comma-separated string.
func (q *QuoteInfo) FeatureList() string {
	if len(q.Features) == 0 {
		return "Aucune option"
	}
	return strings.Join(q.Features, ", ")
}

// ContactInfo carries the fields of a contact-form submission.
type ContactInfo struct {
	Name       string
	Email      string
	AdminEmail string
	SiteName   string
	Subject    string
	Message    string
}

// EmailTemplate defines a named email template
type EmailTemplate struct {
	Name string
	HTML string
	Text string
}

// Renderer provides methods to render email templates
type Renderer struct {
	templates *template.Template
}

// NewRenderer creates a new email template renderer with built-in templates
func NewRenderer() (*Renderer, error) {
	templates := map[string]EmailTemplate{
		"quote_confirmation": {
			Name: "Quote Confirmation",
			HTML: quoteConfirmationHTML,
			Text: quoteConfirmationText,
		},
		"order_confirmation": {
			Name: "Order Confirmation",
			HTML: orderConfirmationHTML,
			Text: orderConfirmationText,
		},
		"custom_quote_ack": {
			Name: "Custom Quote Acknowledgement",
			HTML: customQuoteAckHTML,
			Text: customQuoteAckText,
		},
		"payment_received": {
			Name: "Payment Received",
			HTML: paymentReceivedHTML,
			Text: paymentReceivedText,
		},
		"admin_new_quote": {
			Name: "Admin New Quote Notification",
			HTML: adminNewQuoteHTML,
			Text: adminNewQuoteText,
		},
	}

	tmpl := template.New("email")

	for key, t := range templates {
		_, err := tmpl.New(key + "_html").Parse(t.HTML)
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML template %s: %w", key, err)
		}
		_, err = tmpl.New(key + "_text").Parse(t.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse text template %s: %w", key, err)
		}
	}

	return &Renderer{
		templates: tmpl,
	}, nil
}

// Render renders an email template with the given data. Admin templates
// address the site owner, all others the client.
func (r *Renderer) Render(ctx context.Context, templateName string, data *QuoteInfo) (*Email, error) {
	var htmlBuf, textBuf bytes.Buffer

	err := r.templates.ExecuteTemplate(&htmlBuf, templateName+"_html", data)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	err = r.templates.ExecuteTemplate(&textBuf, templateName+"_text", data)
	if err != nil {
		return nil, fmt.Errorf("failed to render text template: %w", err)
	}

	to := data.ClientEmail
	replyTo := ""
	subject := ""
	switch templateName {
	case "quote_confirmation":
		subject = fmt.Sprintf("Votre devis - %s", data.SiteName)
	case "order_confirmation":
		subject = fmt.Sprintf("Votre commande personnalisée - %s", data.SiteName)
	case "custom_quote_ack":
		subject = fmt.Sprintf("Votre demande de devis - %s", data.SiteName)
	case "payment_received":
		subject = fmt.Sprintf("Paiement reçu - %s", data.SiteName)
	case "admin_new_quote":
		to = data.AdminEmail
		replyTo = data.ClientEmail
		subject = fmt.Sprintf("Nouvelle demande: %s (%s)", data.ProjectType, data.ClientName)
	default:
		return nil, fmt.Errorf("unknown email template: %s", templateName)
	}

	return &Email{
		To:      to,
		ReplyTo: replyTo,
		Subject: subject,
		Text:    textBuf.String(),
		HTML:    htmlBuf.String(),
	}, nil
}

// SendQuoteConfirmation sends the client their quote recap after submission.
func SendQuoteConfirmation(ctx context.Context, p Provider, info *QuoteInfo) error {
	return renderAndSend(ctx, p, "quote_confirmation", info)
}

// SendOrderConfirmation sends the client their customized order recap.
func SendOrderConfirmation(ctx context.Context, p Provider, info *QuoteInfo) error {
	return renderAndSend(ctx, p, "order_confirmation", info)
}

// SendCustomQuoteAck acknowledges a free-form quote request.
func SendCustomQuoteAck(ctx context.Context, p Provider, info *QuoteInfo) error {
	return renderAndSend(ctx, p, "custom_quote_ack", info)
}

// SendPaymentReceived confirms a successful payment to the client.
func SendPaymentReceived(ctx context.Context, p Provider, info *QuoteInfo) error {
	return renderAndSend(ctx, p, "payment_received", info)
}

// SendAdminNewQuote notifies the site owner of a new quote or order.
func SendAdminNewQuote(ctx context.Context, p Provider, info *QuoteInfo) error {
	if info.AdminEmail == "" {
		return nil
	}
	return renderAndSend(ctx, p, "admin_new_quote", info)
}

func renderAndSend(ctx context.Context, p Provider, templateName string, info *QuoteInfo) error {
	if p == nil {
		return nil
	}

	renderer, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	email, err := renderer.Render(ctx, templateName, info)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.SendEmail(ctx, email)
}

// SendContactNotification forwards a contact-form message to the site owner.
func SendContactNotification(ctx context.Context, p Provider, info *ContactInfo) error {
	if p == nil || info.AdminEmail == "" {
		return nil
	}

	subject := info.Subject
	if subject == "" {
		subject = "Nouveau message de contact"
	}

	text := fmt.Sprintf("Nouveau message via %s\n\nDe: %s <%s>\n\n%s\n",
		info.SiteName, info.Name, info.Email, info.Message)

	return p.SendEmail(ctx, &Email{
		To:      info.AdminEmail,
		ReplyTo: info.Email,
		Subject: fmt.Sprintf("%s - %s", subject, info.SiteName),
		Text:    text,
	})
}

// Template text content - Quote Confirmation
const quoteConfirmationText = `Bonjour {{.ClientName}},

Merci pour votre demande de devis sur {{.SiteName}}.

Récapitulatif:
- Type de projet: {{.ProjectType}}
- Options: {{.FeatureList}}
- Montant: {{.Amount}}
- Référence: {{.OrderID}}

{{if .PaymentLink}}Vous pouvez régler votre commande ici:
{{.PaymentLink}}

{{end}}Nous reviendrons vers vous très rapidement.

{{.SiteName}}
{{.SiteURL}}
`

// Template HTML content - Quote Confirmation
const quoteConfirmationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Votre devis</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
    .recap { background: white; padding: 15px; border-radius: 6px; margin: 15px 0; }
    .total { font-size: 18px; font-weight: bold; }
    .footer { text-align: center; padding: 20px; color: #6b7280; font-size: 14px; }
    .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin-top: 15px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Votre devis</h1>
    <p>Merci pour votre demande, {{.ClientName}}</p>
  </div>
  <div class="content">
    <div class="recap">
      <strong>Type de projet:</strong> {{.ProjectType}}<br>
      <strong>Options:</strong> {{.FeatureList}}<br>
      <strong>Référence:</strong> {{.OrderID}}
    </div>
    <p class="total">Montant: {{.Amount}}</p>
    {{if .PaymentLink}}<a class="button" href="{{.PaymentLink}}">Régler ma commande</a>{{end}}
  </div>
  <div class="footer">
    {{.SiteName}} - <a href="{{.SiteURL}}">{{.SiteURL}}</a>
  </div>
</body>
</html>
`

// Template text content - Order Confirmation (customized order)
const orderConfirmationText = `Bonjour {{.ClientName}},

Votre commande personnalisée a bien été enregistrée sur {{.SiteName}}.

Récapitulatif:
- Service: {{.ProjectType}}
- Options: {{.FeatureList}}
- Montant: {{.Amount}}
- Délai estimé: {{.TotalDays}} jour(s)
- Référence: {{.OrderID}}

Votre commande est en attente de validation. Nous vous contacterons
pour confirmer le périmètre et le planning.

{{.SiteName}}
{{.SiteURL}}
`

// Template HTML content - Order Confirmation (customized order)
const orderConfirmationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Votre commande</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
    .recap { background: white; padding: 15px; border-radius: 6px; margin: 15px 0; }
    .total { font-size: 18px; font-weight: bold; }
    .footer { text-align: center; padding: 20px; color: #6b7280; font-size: 14px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Commande enregistrée</h1>
    <p>Merci, {{.ClientName}}</p>
  </div>
  <div class="content">
    <div class="recap">
      <strong>Service:</strong> {{.ProjectType}}<br>
      <strong>Options:</strong> {{.FeatureList}}<br>
      <strong>Délai estimé:</strong> {{.TotalDays}} jour(s)<br>
      <strong>Référence:</strong> {{.OrderID}}
    </div>
    <p class="total">Montant: {{.Amount}}</p>
    <p>Votre commande est en attente de validation. Nous vous contacterons
    pour confirmer le périmètre et le planning.</p>
  </div>
  <div class="footer">
    {{.SiteName}} - <a href="{{.SiteURL}}">{{.SiteURL}}</a>
  </div>
</body>
</html>
`

// Template text content - Custom Quote Acknowledgement
const customQuoteAckText = `Bonjour {{.ClientName}},

Nous avons bien reçu votre demande de devis sur mesure.

{{if .Budget}}Budget indiqué: {{.Budget}}
{{end}}{{if .Deadline}}Échéance souhaitée: {{.Deadline}}
{{end}}Référence: {{.OrderID}}

Nous étudions votre projet et revenons vers vous avec une proposition
détaillée sous 48h.

{{.SiteName}}
{{.SiteURL}}
`

// Template HTML content - Custom Quote Acknowledgement
const customQuoteAckHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Demande de devis</title>
</head>
<body style="font-family: sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Demande bien reçue</h2>
  <p>Bonjour {{.ClientName}},</p>
  <p>Nous avons bien reçu votre demande de devis sur mesure.</p>
  <p>
    {{if .Budget}}<strong>Budget indiqué:</strong> {{.Budget}}<br>{{end}}
    {{if .Deadline}}<strong>Échéance souhaitée:</strong> {{.Deadline}}<br>{{end}}
    <strong>Référence:</strong> {{.OrderID}}
  </p>
  <p>Nous étudions votre projet et revenons vers vous avec une proposition détaillée sous 48h.</p>
  <p>{{.SiteName}} - <a href="{{.SiteURL}}">{{.SiteURL}}</a></p>
</body>
</html>
`

// Template text content - Payment Received
const paymentReceivedText = `Bonjour {{.ClientName}},

Nous confirmons la réception de votre paiement de {{.Amount}}
pour la commande {{.OrderID}}.

Le développement de votre projet démarre dès maintenant.

{{.SiteName}}
{{.SiteURL}}
`

// Template HTML content - Payment Received
const paymentReceivedHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Paiement reçu</title>
</head>
<body style="font-family: sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Paiement reçu</h2>
  <p>Bonjour {{.ClientName}},</p>
  <p>Nous confirmons la réception de votre paiement de <strong>{{.Amount}}</strong>
  pour la commande {{.OrderID}}.</p>
  <p>Le développement de votre projet démarre dès maintenant.</p>
  <p>{{.SiteName}} - <a href="{{.SiteURL}}">{{.SiteURL}}</a></p>
</body>
</html>
`

// Template text content - Admin New Quote Notification
const adminNewQuoteText = `New request on {{.SiteName}}

Client: {{.ClientName}} <{{.ClientEmail}}>
Project: {{.ProjectType}}
Options: {{.FeatureList}}
Amount: {{.Amount}}
Reference: {{.OrderID}}
{{if .Budget}}Budget: {{.Budget}}
{{end}}{{if .Deadline}}Deadline: {{.Deadline}}
{{end}}{{if .Details}}
Details:
{{.Details}}
{{end}}`

// Template HTML content - Admin New Quote Notification
const adminNewQuoteHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>New request</title>
</head>
<body style="font-family: sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>New request on {{.SiteName}}</h2>
  <p>
    <strong>Client:</strong> {{.ClientName}} &lt;{{.ClientEmail}}&gt;<br>
    <strong>Project:</strong> {{.ProjectType}}<br>
    <strong>Options:</strong> {{.FeatureList}}<br>
    <strong>Amount:</strong> {{.Amount}}<br>
    <strong>Reference:</strong> {{.OrderID}}
    {{if .Budget}}<br><strong>Budget:</strong> {{.Budget}}{{end}}
    {{if .Deadline}}<br><strong>Deadline:</strong> {{.Deadline}}{{end}}
  </p>
  {{if .Details}}<p><strong>Details:</strong><br>{{.Details}}</p>{{end}}
</body>
</html>
`
