package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/devaistudio/portfolio/internal/models"
)

func newContactService(contacts *fakeContactRepo, emailer *fakeEmailer) *ContactService {
	return NewContactService(contacts, emailer, "DevAI Portfolio", "owner@example.com", slog.New(slog.DiscardHandler))
}

func TestContactSubmit(t *testing.T) {
	t.Parallel()

	contacts := newFakeContactRepo()
	emailer := &fakeEmailer{}
	svc := newContactService(contacts, emailer)

	message := &models.ContactMessage{
		Name:    "Awa Diallo",
		Email:   "awa@example.com",
		Subject: "Question",
		Message: "Bonjour, je voudrais un site vitrine.",
	}
	if err := svc.Submit(context.Background(), message); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(contacts.messages) != 1 {
		t.Fatalf("stored %d messages, want 1", len(contacts.messages))
	}
	if emailer.sentCount() != 1 {
		t.Errorf("sent %d emails, want 1 forward to the owner", emailer.sentCount())
	}
	if emailer.sent[0].To != "owner@example.com" {
		t.Errorf("forward To = %q", emailer.sent[0].To)
	}
	if emailer.sent[0].ReplyTo != "awa@example.com" {
		t.Errorf("forward ReplyTo = %q, want sender address", emailer.sent[0].ReplyTo)
	}
}

func TestContactSubmitMailerFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	contacts := newFakeContactRepo()
	svc := newContactService(contacts, &fakeEmailer{fail: true})

	message := &models.ContactMessage{
		Name:    "Awa Diallo",
		Email:   "awa@example.com",
		Message: "Bonjour",
	}
	if err := svc.Submit(context.Background(), message); err != nil {
		t.Fatalf("Submit() error = %v, want success despite mailer failure", err)
	}
	if len(contacts.messages) != 1 {
		t.Error("message should have been stored")
	}
}

func TestContactSubmitValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message models.ContactMessage
	}{
		{name: "missing name", message: models.ContactMessage{Email: "a@b.com", Message: "x"}},
		{name: "missing email", message: models.ContactMessage{Name: "Awa", Message: "x"}},
		{name: "empty message", message: models.ContactMessage{Name: "Awa", Email: "a@b.com", Message: "  "}},
	}

	svc := newContactService(newFakeContactRepo(), &fakeEmailer{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			message := tt.message
			err := svc.Submit(context.Background(), &message)
			var userErr UserError
			if !errors.As(err, &userErr) {
				t.Errorf("error = %v, want UserError", err)
			}
		})
	}
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	svc := newContactService(newFakeContactRepo(), &fakeEmailer{})

	if err := svc.Subscribe(context.Background(), " Awa@Example.com "); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	// Same address again, different casing: duplicate.
	err := svc.Subscribe(context.Background(), "awa@example.com")
	var userErr UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("error = %v, want UserError for duplicate", err)
	}
}

func TestSubscribeEmptyAddress(t *testing.T) {
	t.Parallel()

	svc := newContactService(newFakeContactRepo(), &fakeEmailer{})

	err := svc.Subscribe(context.Background(), "   ")
	var userErr UserError
	if !errors.As(err, &userErr) {
		t.Errorf("error = %v, want UserError", err)
	}
}
