package validator

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var inlineEventAttrPattern = regexp.MustCompile(`(?i)^on\w+$`)

func validateParsedDocument(path string, doc []byte, required []string) []ValidationError {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return []ValidationError{newError(path, "parse-document", fmt.Sprintf("parse HTML document failed: %v", err))}
	}

	var errs []ValidationError
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			seen[node.Data] = true
			if node.DataAtom == atom.Script {
				errs = append(errs, newError(path, "script-disallow", "<script> element found; user content must be escaped before rendering"))
			}
			for _, attr := range node.Attr {
				if inlineEventAttrPattern.MatchString(attr.Key) {
					errs = append(errs, newError(path, "event-handler-disallow", fmt.Sprintf("inline event handler attribute %q found on <%s>", attr.Key, node.Data)))
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	var missing []string
	for _, tag := range required {
		if !seen[tag] {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		errs = append(errs, newError(path, "required-element", fmt.Sprintf("missing required elements: %s", strings.Join(missing, ", "))))
	}
	return errs
}

func newError(path, rule, message string) ValidationError {
	return ValidationError{
		Path:     path,
		Rule:     rule,
		Severity: SeverityError,
		Message:  message,
	}
}
