package template

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// EmailTemplateLoader loads operator-provided email templates that replace the
// built-in ones. Files are named {kind}.md, e.g. rental-expired.md.
type EmailTemplateLoader struct {
	templates map[string]string // kind -> file content
	path      string
	logger    logger.Interface
}

func NewEmailTemplateLoader(path string, logger logger.Interface) *EmailTemplateLoader {
	return &EmailTemplateLoader{
		templates: make(map[string]string),
		path:      path,
		logger:    logger,
	}
}

// Load reads every template for the given kinds that exists under the
// configured directory. A missing directory is not an error.
func (l *EmailTemplateLoader) Load(kinds []string) error {
	if l.path == "" {
		return nil
	}
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		l.logger.Warnw("email templates directory not found, using built-in templates", "path", l.path)
		return nil
	}

	for _, kind := range kinds {
		filePath := filepath.Join(l.path, kind+".md")

		content, err := os.ReadFile(filePath)
		if err != nil {
			if !os.IsNotExist(err) {
				l.logger.Warnw("failed to read email template file",
					"file", filePath,
					"error", err,
				)
			}
			continue
		}

		l.templates[kind] = string(content)
		l.logger.Infow("loaded email template override",
			"kind", kind,
			"size", len(content),
		)
	}

	if len(l.templates) > 0 {
		l.logger.Infow("email template overrides loaded", "count", len(l.templates))
	}
	return nil
}

// Get returns (content, true) if an override exists for kind.
func (l *EmailTemplateLoader) Get(kind string) (string, bool) {
	content, ok := l.templates[strings.TrimSpace(kind)]
	return content, ok
}
