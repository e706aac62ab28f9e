package mailer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"
)

func testMailer(send func(*gomail.Message) error) *Mailer {
	return &Mailer{from: "no-reply@wattwise.example.com", send: send}
}

func TestSendWelcomeBuildsMessage(t *testing.T) {
	var sent *gomail.Message
	m := testMailer(func(msg *gomail.Message) error {
		sent = msg
		return nil
	})

	err := m.SendWelcome("user@example.com")
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, []string{"user@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"no-reply@wattwise.example.com"}, sent.GetHeader("From"))
	assert.Equal(t, []string{"Welcome to WattWise"}, sent.GetHeader("Subject"))
}

func TestSendReportReadyBuildsMessage(t *testing.T) {
	var sent *gomail.Message
	m := testMailer(func(msg *gomail.Message) error {
		sent = msg
		return nil
	})

	err := m.SendReportReady("user@example.com", "audit-123", 585.4)
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, []string{"Your energy audit report is ready"}, sent.GetHeader("Subject"))
}

func TestSendFailureReturnsEmailError(t *testing.T) {
	m := testMailer(func(*gomail.Message) error {
		return errors.New("dial tcp: connection refused")
	})

	err := m.SendWelcome("user@example.com")
	require.Error(t, err)
	var emailErr *EmailError
	require.ErrorAs(t, err, &emailErr)
	// The transport detail never leaks into the surfaced error.
	assert.Equal(t, "failed to send email", emailErr.Message)
}

func TestNewMailerFromEnvDefaults(t *testing.T) {
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_FROM", "")

	m := NewMailerFromEnv()
	assert.Equal(t, 587, m.port)
	assert.Equal(t, "no-reply@wattwise.example.com", m.from)
	assert.NotNil(t, m.send)
}
