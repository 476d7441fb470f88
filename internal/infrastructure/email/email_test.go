package email

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/reelgate-inc/reelgate/internal/application/notification/dto"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/services/markdown"
)

type capturingMailer struct {
	sent []*gomail.Message
	err  error
}

func (m *capturingMailer) DialAndSend(msgs ...*gomail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msgs...)
	return nil
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(markdown.NewMarkdownService(), nil)
	require.NoError(t, err)
	return r
}

func rentalData() dto.MessageData {
	purchased := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	expires := purchased.Add(72 * time.Hour)
	return dto.MessageData{
		RecipientName: "Ada",
		TierName:      "Rental",
		PriceCents:    499,
		Currency:      "usd",
		PurchasedAt:   purchased,
		ExpiresAt:     &expires,
	}
}

func TestRenderer_AllKinds(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		kind    dto.MessageKind
		subject string
	}{
		{dto.MessageRentalWarning48h, "Your rental ends in two days"},
		{dto.MessageRentalWarning24h, "Your rental ends tomorrow"},
		{dto.MessageRentalExpired, "Your rental has ended"},
		{dto.MessagePurchaseReceipt, "Your receipt for Rental"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			out, err := r.Render(tt.kind, rentalData())
			require.NoError(t, err)
			assert.Equal(t, tt.subject, out.Subject)
			assert.Contains(t, out.Plain, "Hi Ada,")
			assert.Contains(t, out.HTML, "March 4, 2026 09:30 UTC")
			assert.NotContains(t, out.Plain, "Subject:")
		})
	}
}

func TestRenderer_ReceiptPrice(t *testing.T) {
	r := newTestRenderer(t)
	data := rentalData()
	data.TierName = "Box Set"
	data.PriceCents = 249900
	data.ExpiresAt = nil

	out, err := r.Render(dto.MessagePurchaseReceipt, data)
	require.NoError(t, err)
	assert.Contains(t, out.Plain, "USD 2,499.00")
	assert.NotContains(t, out.Plain, "Access ends")
	assert.Contains(t, out.HTML, "<table>")
}

func TestRenderer_SanitizesRecipientName(t *testing.T) {
	r := newTestRenderer(t)
	data := rentalData()
	data.RecipientName = `<script>alert(1)</script>[click](https://evil.test)`

	out, err := r.Render(dto.MessageRentalExpired, data)
	require.NoError(t, err)
	assert.NotContains(t, out.HTML, "<script>")
	assert.NotContains(t, out.HTML, ">click</a>")
}

func TestRenderer_EmptyNameFallsBack(t *testing.T) {
	r := newTestRenderer(t)
	data := rentalData()
	data.RecipientName = "<b></b>"

	out, err := r.Render(dto.MessageRentalWarning24h, data)
	require.NoError(t, err)
	assert.Contains(t, out.Plain, "Hi there,")
}

type staticTemplates map[string]string

func (s staticTemplates) Get(kind string) (string, bool) {
	v, ok := s[kind]
	return v, ok
}

func TestRenderer_Override(t *testing.T) {
	r, err := NewRenderer(markdown.NewMarkdownService(), staticTemplates{
		string(dto.MessageRentalExpired): "Subject: Rental over\n\nBye {{.Name}}.",
	})
	require.NoError(t, err)

	out, err := r.Render(dto.MessageRentalExpired, rentalData())
	require.NoError(t, err)
	assert.Equal(t, "Rental over", out.Subject)
	assert.Equal(t, "Bye Ada.", out.Plain)

	out, err = r.Render(dto.MessageRentalWarning24h, rentalData())
	require.NoError(t, err)
	assert.Equal(t, "Your rental ends tomorrow", out.Subject)
}

func TestRenderer_InvalidOverride(t *testing.T) {
	_, err := NewRenderer(markdown.NewMarkdownService(), staticTemplates{
		string(dto.MessageRentalExpired): "Subject: x\n\n{{.Broken",
	})
	assert.Error(t, err)
}

func TestRenderer_UnknownKind(t *testing.T) {
	r := newTestRenderer(t)
	_, err := r.Render(dto.MessageKind("nope"), rentalData())
	assert.Error(t, err)
}

func newTestSender(t *testing.T, m *capturingMailer) *SMTPSender {
	return &SMTPSender{
		dialer:      m,
		fromAddress: "noreply@reelgate.test",
		fromName:    "Reelgate",
		renderer:    newTestRenderer(t),
		logger:      logger.NewNopLogger(),
	}
}

func TestSMTPSender_SendNotification(t *testing.T) {
	m := &capturingMailer{}
	s := newTestSender(t, m)

	err := s.SendNotification(context.Background(), "ada@example.com", dto.MessageRentalWarning48h, rentalData())
	require.NoError(t, err)
	require.Len(t, m.sent, 1)

	msg := m.sent[0]
	assert.Equal(t, []string{"ada@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your rental ends in two days"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestSMTPSender_Errors(t *testing.T) {
	m := &capturingMailer{err: errors.New("connection refused")}
	s := newTestSender(t, m)

	err := s.SendNotification(context.Background(), "ada@example.com", dto.MessageRentalExpired, rentalData())
	assert.Error(t, err)

	err = s.SendNotification(context.Background(), "", dto.MessageRentalExpired, rentalData())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.SendNotification(ctx, "ada@example.com", dto.MessageRentalExpired, rentalData())
	assert.ErrorIs(t, err, context.Canceled)
}
