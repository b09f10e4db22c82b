package validator

import (
	"fmt"
	"strings"
)

const (
	SeverityError = "error"
)

type ValidationError struct {
	Path     string
	Rule     string
	Severity string
	Message  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] page %q (%s): %s", e.Severity, e.Path, e.Rule, e.Message)
}

// ValidatePage checks one rendered HTML document with the default rule set.
func ValidatePage(path string, doc []byte) []ValidationError {
	return ValidatePageWithConfig(path, doc, DefaultConfig())
}

// ValidatePageWithConfig checks one rendered HTML document. Script elements
// and inline event handlers are always reported.
func ValidatePageWithConfig(path string, doc []byte, cfg Config) []ValidationError {
	required := make([]string, 0, len(cfg.RequiredElements))
	for _, tag := range cfg.RequiredElements {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			required = append(required, tag)
		}
	}
	return validateParsedDocument(path, doc, required)
}

func FormatErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}
