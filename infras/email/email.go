package email

//go:generate go run go.uber.org/mock/mockgen -source=./email.go -destination=./mocks/email_mock.go -package=mocks

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"sportsassist/config"
	"sportsassist/infras/otel"
	"sportsassist/shared/constant"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

const (
	TemplateCampMessage        = "camp_message.html"
	TemplateRegistrationUpdate = "registration_update.html"
)

var (
	ErrDisabled    = errors.New("email delivery is disabled")
	ErrRateLimited = errors.New("email rate limit exceeded")
)

//go:embed templates/*.html
var templateFS embed.FS

type Message struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
	Tags    map[string]string
}

// CampMessageData is rendered into the camp message template. Body must
// already be sanitized HTML.
type CampMessageData struct {
	OrganizationName string
	CampName         string
	Subject          string
	Body             template.HTML
	Link             string
}

// RegistrationUpdateData is rendered into the registration update template.
type RegistrationUpdateData struct {
	ParentName string
	Headline   string
	Detail     string
	CampName   string
	StartDate  string
	EndDate    string
	Location   string
	Link       string
}

type Email interface {
	Enabled() bool
	Send(ctx context.Context, message Message) (id string, err error)
	Render(name string, data any) (string, error)
}

type resendEmail struct {
	client    *resend.Client
	from      string
	enabled   bool
	templates *template.Template
	otel      otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Email {
	enabled := cfg.External.Email.Enable && cfg.External.Email.APIKey != constant.Empty
	if !enabled {
		log.Warn().Msg("Email delivery disabled, messages will be recorded as skipped")
	}

	return NewWithClient(resend.NewClient(cfg.External.Email.APIKey), cfg.External.Email.From, enabled, otel)
}

func NewWithClient(client *resend.Client, from string, enabled bool, otel otel.Otel) Email {
	return &resendEmail{
		client:    client,
		from:      from,
		enabled:   enabled,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		otel:      otel,
	}
}

func (e *resendEmail) Enabled() bool {
	return e.enabled
}

func (e *resendEmail) Render(name string, data any) (string, error) {
	var buf bytes.Buffer

	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return constant.Empty, fmt.Errorf("failed to render email template %s: %w", name, err)
	}

	return buf.String(), nil
}

// Send delivers one email. Rate limit responses are returned as ErrRateLimited
// without retrying.
func (e *resendEmail) Send(ctx context.Context, message Message) (id string, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelEmailScopeName, constant.OtelEmailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !e.enabled {
		return constant.Empty, ErrDisabled
	}

	request := &resend.SendEmailRequest{
		From:    e.from,
		To:      message.To,
		Subject: message.Subject,
		Html:    message.HTML,
		ReplyTo: message.ReplyTo,
	}

	for name, value := range message.Tags {
		request.Tags = append(request.Tags, resend.Tag{Name: name, Value: value})
	}

	sent, err := e.client.Emails.SendWithContext(ctx, request)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			log.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("remaining", rateLimitErr.Remaining).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")

			return constant.Empty, fmt.Errorf("%w (resets in %s seconds): %w", ErrRateLimited, rateLimitErr.Reset, err)
		}

		log.Error().Err(err).Strs("to", message.To).Msg("failed to send email")

		return constant.Empty, fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("email_id", sent.Id).Int("recipients", len(message.To)).Msg("email sent via Resend")

	return sent.Id, nil
}
