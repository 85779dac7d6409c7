package parser

import (
	"regexp"
)

var tagPattern = regexp.MustCompile(`<([A-Za-z][\w.:-]*)[\s/>]`)

// ScanComponents lists component-like tag names (capitalized or dotted) in
// template markup, in first-seen order. Inline scripts are skipped. The result
// is informational: traversal does not follow it.
func ScanComponents(body []byte) []string {
	if len(body) == 0 {
		return nil
	}
	markup := scriptPattern.ReplaceAll(body, nil)

	seen := make(map[string]bool)
	var names []string
	for _, m := range tagPattern.FindAllSubmatch(markup, -1) {
		if name := string(m[1]); isComponentName(name) {
			names = appendUnique(names, seen, name)
		}
	}
	return names
}
