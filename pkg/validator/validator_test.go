package validator

import (
	"strings"
	"testing"
)

const cleanPage = `<!DOCTYPE html>
<html lang="de">
<head><title>Start</title></head>
<body>
  <header class="site-header"></header>
  <main><section class="section-hero"><h1>&lt;script&gt;alert(1)&lt;/script&gt;</h1></section></main>
  <footer class="site-footer"></footer>
</body>
</html>`

func TestValidatePageRules(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantRule string
		wantText string
	}{
		{name: "clean", doc: cleanPage},
		{name: "script", doc: strings.Replace(cleanPage, "<main>", "<main><script>alert(1)</script>", 1), wantRule: "script-disallow", wantText: "<script>"},
		{name: "nested script", doc: strings.Replace(cleanPage, "<h1>", "<h1><span><script></script></span>", 1), wantRule: "script-disallow"},
		{name: "event handler", doc: strings.Replace(cleanPage, `<h1>`, `<h1 onClick="x()">`, 1), wantRule: "event-handler-disallow", wantText: `"onclick"`},
		{name: "missing footer", doc: strings.Replace(cleanPage, `<footer class="site-footer"></footer>`, "", 1), wantRule: "required-element", wantText: "footer"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidatePage("index.html", []byte(tc.doc))
			if tc.wantRule == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %s", FormatErrors(errs))
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("expected %s error", tc.wantRule)
			}
			found := false
			for _, err := range errs {
				if err.Rule == tc.wantRule && strings.Contains(err.Message, tc.wantText) {
					found = true
				}
				if err.Path != "index.html" || err.Severity != SeverityError {
					t.Fatalf("unexpected error metadata: %#v", err)
				}
			}
			if !found {
				t.Fatalf("expected rule %q containing %q, got %s", tc.wantRule, tc.wantText, FormatErrors(errs))
			}
		})
	}
}

func TestValidatePageWithConfigCustomElements(t *testing.T) {
	errs := ValidatePageWithConfig("x.html", []byte(cleanPage), Config{RequiredElements: []string{" NAV ", ""}})
	if len(errs) != 1 || errs[0].Rule != "required-element" || !strings.Contains(errs[0].Message, "nav") {
		t.Fatalf("unexpected errors: %s", FormatErrors(errs))
	}
}

func TestFormatErrors(t *testing.T) {
	if FormatErrors(nil) != "" {
		t.Fatalf("expected empty output for no errors")
	}
	out := FormatErrors([]ValidationError{
		{Path: "a.html", Rule: "r1", Severity: SeverityError, Message: "m1"},
		{Path: "b.html", Rule: "r2", Severity: SeverityError, Message: "m2"},
	})
	if out != "[error] page \"a.html\" (r1): m1\n[error] page \"b.html\" (r2): m2" {
		t.Fatalf("FormatErrors() = %q", out)
	}
}
