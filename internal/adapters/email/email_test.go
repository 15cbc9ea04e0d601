package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTemplateRenderer_TicketConfirmation(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.TicketConfirmationEmailData{
		Email:     "ama@example.com",
		Reference: "TX1",
		EventName: "Highlife Night",
		Tickets: []*domain.Ticket{
			{ID: "t-1", Name: "Ama"},
			{ID: "t-2", Name: "Kojo <script>"},
		},
	}

	subject, html, text, err := r.Render("ticket_confirmation", data)
	require.NoError(t, err)
	assert.Equal(t, "Your tickets for Highlife Night (2)", subject)
	assert.Contains(t, text, "- Ama (ticket t-1)")
	assert.Contains(t, text, "Payment reference: TX1")
	assert.Contains(t, html, "Kojo &lt;script&gt;")
	assert.NotContains(t, html, "<script>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	require.Error(t, err)
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, "tickets@example.com", "Box Office", discardLogger())

	require.NoError(t, m.Send(context.Background(), "ama@example.com", "Hi", "<p>hi</p>", "hi"))
	require.NotNil(t, client.input)
	assert.Equal(t, "Box Office <tickets@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ama@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Hi", aws.ToString(client.input.Message.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Equal(t, "hi", aws.ToString(client.input.Message.Body.Text.Data))
}

func TestSESMailer_Send_Error(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	m := newSESMailer(client, "tickets@example.com", "", discardLogger())

	err := m.Send(context.Background(), "ama@example.com", "Hi", "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	assert.Nil(t, client.input.Message.Body.Html)
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: "noop"}, discardLogger())
	require.NoError(t, err)
	require.NoError(t, m.Send(context.Background(), "a@example.com", "s", "", ""))

	_, err = NewMailer(MailerConfig{Provider: "ses"}, discardLogger())
	require.Error(t, err)

	m, err = NewMailer(MailerConfig{Provider: "ses", FromAddress: "x@example.com", SES: SESConfig{Region: "eu-west-1"}}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)
}
