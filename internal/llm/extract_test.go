package llm

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantOK  bool
		wantKey string
	}{
		{
			name:    "plain object",
			raw:     `{"summary":"ok"}`,
			wantOK:  true,
			wantKey: "summary",
		},
		{
			name:    "fenced object",
			raw:     "```json\n{\"summary\":\"ok\"}\n```",
			wantOK:  true,
			wantKey: "summary",
		},
		{
			name:    "prose around object",
			raw:     "Sure! Here is the JSON you asked for:\n{\"summary\":\"ok\"}\nHope it helps.",
			wantOK:  true,
			wantKey: "summary",
		},
		{
			name:    "line comments inside object",
			raw:     "{\n// the short version\n\"summary\":\"ok\"\n}",
			wantOK:  true,
			wantKey: "summary",
		},
		{
			name:   "no braces at all",
			raw:    "I could not produce JSON for that input.",
			wantOK: false,
		},
		{
			name:   "empty input",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "truncated object",
			raw:    `{"summary":"ok","keywords":["a",`,
			wantOK: false,
		},
		{
			name:   "braces but invalid body",
			raw:    "{this is not json}",
			wantOK: false,
		},
		{
			name:    "nested braces in prose suffix",
			raw:     "{\"summary\":\"ok\"} and an empty one {}",
			wantOK:  false,
			wantKey: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := Extract(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Extract ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				if parsed != nil {
					t.Fatalf("failed extract returned non-nil map %v", parsed)
				}
				return
			}
			if tt.wantKey != "" {
				if _, present := parsed[tt.wantKey]; !present {
					t.Fatalf("parsed object missing %q: %v", tt.wantKey, parsed)
				}
			}
		})
	}
}

// The extractor is fed arbitrary model output and must never panic; any
// hostile input degrades to (nil, false).
func TestExtractNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"}",
		"}{",
		"```",
		"```json\n```",
		"{{{{{{",
		"null",
		"[1,2,3]",
		"\x00\x01{\"a\":1}\xff",
		"{\"a\": // dangling\n",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Extract(%q) panicked: %v", in, r)
				}
			}()
			Extract(in)
		}()
	}
}
