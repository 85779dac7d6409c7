package parser

import (
	"testing"
)

func FuzzParseTemplate(f *testing.F) {
	f.Add([]byte("---\nimport A from './A.astro';\n---\n<A />\n<script>import('./b')</script>\n"))
	f.Add([]byte("---\n---\n"))
	f.Add([]byte("<script>"))

	p, err := NewParser(NewGrammarLoader())
	if err != nil {
		f.Fatal(err)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		out, err := p.ParseFile("page.astro", data)
		if err != nil {
			t.Fatalf("template parse must not fail: %v", err)
		}
		for _, spec := range out.Specifiers {
			if spec.Value == "" {
				t.Fatal("empty specifier extracted")
			}
		}
	})
}
