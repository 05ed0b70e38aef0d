package mail

import (
	"net/http"
	"strings"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipientsSkipsInvalidAndDuplicates(t *testing.T) {
	got := Recipients("A@x.com", "a@x.com", "", "not-an-email", "b@y.org")
	require.Len(t, got, 2)
	assert.Equal(t, "a@x.com", got[0].Address)
	assert.Equal(t, "b@y.org", got[1].Address)
}

func TestRenderRegisteredTemplate(t *testing.T) {
	msg := &EmailMessage{
		To:           Recipients("s@x.com"),
		Subject:      "Feedback",
		TemplateName: TemplateFormPublished,
		TemplateData: FormPublishedData{AppName: "Reflectify", FormTitle: "Mid term", Division: "A", Link: "http://l/f/mid-term"},
	}
	require.NoError(t, msg.Render())
	assert.Contains(t, msg.TextContent, "http://l/f/mid-term")
	assert.Contains(t, msg.HTMLContent, `href="http://l/f/mid-term"`)
	assert.NotContains(t, msg.TextContent, "closes on")
}

func TestRenderUnknownTemplate(t *testing.T) {
	msg := &EmailMessage{TemplateName: "nope"}
	assert.Error(t, msg.Render())
}

func TestConsoleMockRecordsSynchronously(t *testing.T) {
	svc := NewConsoleServiceMock()
	svc.SendMessages(
		&EmailMessage{To: Recipients("a@x.com"), Subject: "hi", TextContent: "body"},
		&EmailMessage{Subject: "no recipients", TextContent: "body"},
		&EmailMessage{To: Recipients("b@x.com"), Subject: "empty"},
	)
	sent := svc.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "hi", sent[0].Subject)
}

func TestSendgridSendBuildsRequest(t *testing.T) {
	svc := NewSendgridService("key", "Reflectify", "noreply@x.com").(*sendgridService)
	var captured rest.Request
	svc.api = func(req rest.Request) (*rest.Response, error) {
		captured = req
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	}

	err := svc.deliver(&EmailMessage{To: Recipients("a@x.com"), Subject: "Hello", TextContent: "body"})
	require.NoError(t, err)
	assert.Equal(t, rest.Method(http.MethodPost), captured.Method)
	assert.True(t, strings.HasSuffix(captured.BaseURL, sendgridEndpoint))
	assert.Contains(t, string(captured.Body), "[Reflectify] Hello")
	assert.Contains(t, string(captured.Body), "a@x.com")
}

func TestSendgridErrorStatus(t *testing.T) {
	svc := NewSendgridService("key", "Reflectify", "noreply@x.com").(*sendgridService)
	svc.api = func(req rest.Request) (*rest.Response, error) {
		return &rest.Response{StatusCode: http.StatusUnauthorized, Body: "bad key"}, nil
	}
	err := svc.deliver(&EmailMessage{To: Recipients("a@x.com"), Subject: "x", TextContent: "body"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
