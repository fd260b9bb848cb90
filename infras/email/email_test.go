package email_test

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"sportsassist/infras/email"
	"sportsassist/infras/otel/mocks"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *resend.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := resend.NewClient("test-api-key")
	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	client.BaseURL = baseURL

	return client
}

func TestSend_Success(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)

		var req resend.SendEmailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, "camps@example.com", req.From)
		assert.Equal(t, []string{"parent@example.com"}, req.To)
		assert.Equal(t, "Pickup moved", req.Subject)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "email-123"})
	})

	svc := email.NewWithClient(client, "camps@example.com", true, mocks.NewOtel())

	id, err := svc.Send(context.Background(), email.Message{
		To:      []string{"parent@example.com"},
		Subject: "Pickup moved",
		HTML:    "<p>Pickup is at 4pm</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "email-123", id)
}

func TestSend_RateLimited(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("ratelimit-limit", "2")
		w.Header().Set("ratelimit-remaining", "0")
		w.Header().Set("ratelimit-reset", "1")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{"statusCode": 429, "name": "rate_limit_exceeded", "message": "Too many requests"})
	})

	svc := email.NewWithClient(client, "camps@example.com", true, mocks.NewOtel())

	_, err := svc.Send(context.Background(), email.Message{To: []string{"parent@example.com"}, Subject: "Hi", HTML: "<p>Hi</p>"})

	assert.ErrorIs(t, err, email.ErrRateLimited)
}

func TestSend_Disabled(t *testing.T) {
	svc := email.NewWithClient(resend.NewClient(""), "camps@example.com", false, mocks.NewOtel())

	assert.False(t, svc.Enabled())

	_, err := svc.Send(context.Background(), email.Message{To: []string{"parent@example.com"}})
	assert.ErrorIs(t, err, email.ErrDisabled)
}

func TestRender_CampMessage(t *testing.T) {
	svc := email.NewWithClient(resend.NewClient(""), "camps@example.com", false, mocks.NewOtel())

	html, err := svc.Render(email.TemplateCampMessage, email.CampMessageData{
		OrganizationName: "Riverside FC",
		CampName:         "Summer Soccer",
		Subject:          "Bring water <b>bottles</b>",
		Body:             template.HTML("<p>See you <strong>Monday</strong></p>"),
		Link:             "https://app.example.com/messages/1",
	})

	require.NoError(t, err)
	assert.Contains(t, html, "Riverside FC")
	assert.Contains(t, html, "<p>See you <strong>Monday</strong></p>")
	assert.Contains(t, html, "Bring water &lt;b&gt;bottles&lt;/b&gt;")
	assert.Contains(t, html, "https://app.example.com/messages/1")

	_, err = svc.Render("missing.html", nil)
	assert.Error(t, err)
}

func TestRender_RegistrationUpdate(t *testing.T) {
	svc := email.NewWithClient(resend.NewClient(""), "camps@example.com", false, mocks.NewOtel())

	html, err := svc.Render(email.TemplateRegistrationUpdate, email.RegistrationUpdateData{
		ParentName: "Dana",
		Headline:   "A spot opened up",
		Detail:     "Your registration moved off the waitlist.",
		CampName:   "Summer Soccer",
		StartDate:  "2026-07-01",
		EndDate:    "2026-07-05",
	})

	require.NoError(t, err)
	assert.Contains(t, html, "Hi Dana,")
	assert.Contains(t, html, "A spot opened up")
	assert.Contains(t, html, "2026-07-01 to 2026-07-05")
	assert.NotContains(t, html, "View your registrations")
}
