package email

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/reelgate-inc/reelgate/internal/application/notification/dto"
	"github.com/reelgate-inc/reelgate/internal/shared/services/markdown"
)

//go:embed templates/*.md
var templateFS embed.FS

const (
	subjectPrefix = "Subject:"
	dateLayout    = "January 2, 2006 15:04 MST"
)

// Rendered is one email ready to send.
type Rendered struct {
	Subject string
	HTML    string
	Plain   string
}

// templateData holds display strings only. User-supplied values are stripped
// of markup before they reach a template.
type templateData struct {
	Name        string
	Tier        string
	Price       string
	PurchasedAt string
	ExpiresAt   string
}

// Renderer turns a message kind and its data into subject, HTML and text bodies.
// Template format: first line "Subject: ...", a blank line, then markdown.
type Renderer struct {
	templates map[dto.MessageKind]*template.Template
	markdown  markdown.MarkdownService
	printer   *message.Printer
}

// TemplateSource supplies template overrides by message kind.
type TemplateSource interface {
	Get(kind string) (string, bool)
}

// Kinds lists every message kind a Renderer must be able to render.
func Kinds() []dto.MessageKind {
	return []dto.MessageKind{
		dto.MessageRentalWarning48h,
		dto.MessageRentalWarning24h,
		dto.MessageRentalExpired,
		dto.MessagePurchaseReceipt,
	}
}

// NewRenderer parses the built-in templates. overrides may be nil.
func NewRenderer(md markdown.MarkdownService, overrides TemplateSource) (*Renderer, error) {
	kinds := Kinds()

	templates := make(map[dto.MessageKind]*template.Template, len(kinds))
	for _, kind := range kinds {
		raw, err := templateFS.ReadFile("templates/" + string(kind) + ".md")
		if err != nil {
			return nil, fmt.Errorf("missing email template %s: %w", kind, err)
		}
		if overrides != nil {
			if custom, ok := overrides.Get(string(kind)); ok {
				raw = []byte(custom)
			}
		}
		tmpl, err := template.New(string(kind)).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", kind, err)
		}
		templates[kind] = tmpl
	}

	return &Renderer{
		templates: templates,
		markdown:  md,
		printer:   message.NewPrinter(language.English),
	}, nil
}

func (r *Renderer) Render(kind dto.MessageKind, data dto.MessageData) (*Rendered, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return nil, fmt.Errorf("unknown message kind: %s", kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.templateData(data)); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", kind, err)
	}

	subject, body, err := splitSubject(buf.String())
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", kind, err)
	}

	html, err := r.markdown.ToHTMLSanitized(body)
	if err != nil {
		return nil, err
	}

	return &Rendered{
		Subject: subject,
		HTML:    html,
		Plain:   body,
	}, nil
}

func (r *Renderer) templateData(data dto.MessageData) templateData {
	name := strings.TrimSpace(r.markdown.StripTags(data.RecipientName))
	if name == "" {
		name = "there"
	}

	td := templateData{
		Name:        escapeMarkdown(name),
		Tier:        data.TierName,
		Price:       r.formatPrice(data.PriceCents, data.Currency),
		PurchasedAt: formatDate(data.PurchasedAt),
	}
	if data.ExpiresAt != nil {
		td.ExpiresAt = formatDate(*data.ExpiresAt)
	}
	return td
}

// formatPrice renders minor units as "USD 4.99" with locale grouping.
func (r *Renderer) formatPrice(cents int64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return r.printer.Sprintf("%s %.2f", code, float64(cents)/100)
	}
	return r.printer.Sprintf("%s %.2f", unit.String(), float64(cents)/100)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func splitSubject(rendered string) (string, string, error) {
	first, rest, _ := strings.Cut(rendered, "\n")
	if !strings.HasPrefix(first, subjectPrefix) {
		return "", "", fmt.Errorf("first line must start with %q", subjectPrefix)
	}
	subject := strings.TrimSpace(strings.TrimPrefix(first, subjectPrefix))
	return subject, strings.TrimLeft(rest, "\n"), nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "#", `\#`, "|", `\|`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
