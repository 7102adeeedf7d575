package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderInvitation(t *testing.T) {
	msg, err := render(UserWelcomeTemplate, map[string]any{
		"Username":      "Ana",
		"ActivationURL": "https://tastemap.example/confirm/abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to TasteMap, Ana", msg.subject)
	assert.Contains(t, msg.plain, "https://tastemap.example/confirm/abc")
	assert.Contains(t, msg.html, `<a href="https://tastemap.example/confirm/abc">`)
}

func TestRenderAccountStatus(t *testing.T) {
	msg, err := render(AccountStatusTemplate, map[string]any{
		"Username": "Ana",
		"Status":   "suspended",
		"Until":    "2026-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your TasteMap account is now suspended", msg.subject)
	assert.Contains(t, msg.plain, "The suspension ends on 2026-04-01.")
	assert.NotContains(t, msg.plain, "post reviews again")
}

func TestRenderIssueUpdateEscapesHTML(t *testing.T) {
	msg, err := render(IssueUpdateTemplate, map[string]any{
		"Username":   "Ana",
		"IssueID":    int64(7),
		"Restaurant": "Tasca <b>Zé</b>",
		"Status":     "resolved",
		"Note":       "",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your report #7 was resolved", msg.subject)
	assert.Contains(t, msg.html, "Tasca &lt;b&gt;Zé&lt;/b&gt;")
	assert.NotContains(t, msg.plain, "Note from our team")
}

func TestRenderReviewUpdate(t *testing.T) {
	received, err := render(ReviewUpdateTemplate, map[string]any{
		"Username":   "Rui",
		"Restaurant": "Tasca do Zé",
		"Event":      "received",
		"Rating":     2,
		"Comment":    "cold soup",
	})
	require.NoError(t, err)
	assert.Equal(t, "New review for Tasca do Zé", received.subject)
	assert.Contains(t, received.plain, "2-star review")
	assert.Contains(t, received.plain, "cold soup")

	rejected, err := render(ReviewUpdateTemplate, map[string]any{
		"Username":   "Ana",
		"Restaurant": "Tasca do Zé",
		"Event":      "rejected",
		"Rating":     1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Your review of Tasca do Zé was rejected", rejected.subject)
	assert.Contains(t, rejected.plain, "hidden from other diners")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := render("missing.tmpl", nil)
	assert.Error(t, err)
}

func TestLogMailer(t *testing.T) {
	m := LogMailer{Logger: zap.NewNop().Sugar()}
	assert.NoError(t, m.Send(ResetPasswordTemplate, "Ana", "ana@example.com", map[string]any{
		"Username": "Ana",
		"ResetURL": "https://tastemap.example/reset/xyz",
	}))
}
