package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/domain/contact"
	"github.com/prestigebuild/siteapi/internal/notifications"
)

type fakeNotifier struct {
	leadErr error
	ackErr  error
	leads   []notifications.ContactMessage
	acks    []string
}

func (f *fakeNotifier) SendContactNotification(_ context.Context, msg notifications.ContactMessage) error {
	if f.leadErr != nil {
		return f.leadErr
	}

	f.leads = append(f.leads, msg)
	return nil
}

func (f *fakeNotifier) SendContactAcknowledgement(_ context.Context, email, _ string) error {
	if f.ackErr != nil {
		return f.ackErr
	}

	f.acks = append(f.acks, email)
	return nil
}

type fakeContactsRepo struct {
	items []contact.Contact
	err   error
}

func (f *fakeContactsRepo) List(_ context.Context) ([]contact.Contact, error) {
	return f.items, f.err
}

func (f *fakeContactsRepo) UpdateStatus(_ context.Context, id string, status string) (contact.Contact, error) {
	if f.err != nil {
		return contact.Contact{}, f.err
	}

	for _, c := range f.items {
		if c.ID.Hex() == id {
			c.Status = status
			return c, nil
		}
	}
	return contact.Contact{}, contact.ErrNotFound
}

func (f *fakeContactsRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}

	for _, c := range f.items {
		if c.ID.Hex() == id {
			return nil
		}
	}
	return contact.ErrNotFound
}

func contactsRouter(repo *fakeContactsRepo, notifier *fakeNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewContactsHandler(repo, notifier, logger)

	router := gin.New()
	router.POST("/api/contacts", h.SubmitContact)
	router.GET("/api/contacts", h.ListContacts)
	router.PATCH("/api/contacts/:id/status", h.UpdateContactStatus)
	return router
}

const validContactBody = `{"name":"John Smith","email":"john@example.com","phone":"555-0101","subject":"New garage","message":"I would like a quote."}`

func TestSubmitContact(t *testing.T) {
	notifier := &fakeNotifier{}

	router := contactsRouter(&fakeContactsRepo{}, notifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(validContactBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	if len(notifier.leads) != 1 {
		t.Fatalf("leads sent = %d, want 1", len(notifier.leads))
	}

	if notifier.leads[0].Subject != "New garage" {
		t.Errorf("lead subject = %q", notifier.leads[0].Subject)
	}

	if len(notifier.acks) != 1 || notifier.acks[0] != "john@example.com" {
		t.Errorf("acks = %v, want [john@example.com]", notifier.acks)
	}
}

func TestSubmitContactLeadFailureFailsRequest(t *testing.T) {
	notifier := &fakeNotifier{leadErr: errors.New("smtp down")}

	router := contactsRouter(&fakeContactsRepo{}, notifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(validContactBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	if len(notifier.acks) != 0 {
		t.Fatal("no acknowledgement should be sent when the lead fails")
	}
}

func TestSubmitContactAckFailureIsIgnored(t *testing.T) {
	notifier := &fakeNotifier{ackErr: errors.New("mailbox full")}

	router := contactsRouter(&fakeContactsRepo{}, notifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(validContactBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if len(notifier.leads) != 1 {
		t.Fatal("lead must still be delivered")
	}
}

func TestSubmitContactValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing subject", body: `{"name":"John","email":"john@example.com","message":"Hi"}`},
		{name: "bad email", body: `{"name":"John","email":"nope","subject":"Hi","message":"Hi there"}`},
		{name: "empty body", body: `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			notifier := &fakeNotifier{}

			router := contactsRouter(&fakeContactsRepo{}, notifier)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}

			if len(notifier.leads) != 0 {
				t.Fatal("invalid submission must not be mailed")
			}
		})
	}
}

func TestUpdateContactStatusRejectsUnknownStatus(t *testing.T) {
	router := contactsRouter(&fakeContactsRepo{}, &fakeNotifier{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/contacts/64b000000000000000000000/status",
		strings.NewReader(`{"status":"archived"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
