package matching

import (
	"testing"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{
			name: "bare array",
			text: `[{"job_id":"a"}]`,
			want: `[{"job_id":"a"}]`,
		},
		{
			name: "array with commentary before and after",
			text: "Here are the results:\n[{\"job_id\":\"a\"}]\nLet me know if you need more.",
			want: `[{"job_id":"a"}]`,
		},
		{
			name: "nested arrays inside elements",
			text: `[{"key_matches":["a","b"],"concerns":[]}]`,
			want: `[{"key_matches":["a","b"],"concerns":[]}]`,
		},
		{
			name: "closing bracket inside a string value",
			text: `[{"match_notes":"good fit ] really"}] trailing`,
			want: `[{"match_notes":"good fit ] really"}]`,
		},
		{
			name: "opening bracket inside a string value",
			text: `result: [{"match_notes":"see section [A] for details"}] done`,
			want: `[{"match_notes":"see section [A] for details"}]`,
		},
		{
			name: "escaped quote inside a string",
			text: `[{"match_notes":"she said \"apply]\" loudly"}]`,
			want: `[{"match_notes":"she said \"apply]\" loudly"}]`,
		},
		{
			name: "escaped backslash before closing quote",
			text: `[{"match_notes":"path\\"}] rest`,
			want: `[{"match_notes":"path\\"}]`,
		},
		{
			name: "markdown fenced answer",
			text: "```json\n[{\"job_id\":\"a\"}]\n```",
			want: `[{"job_id":"a"}]`,
		},
		{
			name:    "no array at all",
			text:    `{"job_id":"a"}`,
			wantErr: true,
		},
		{
			name:    "unterminated array",
			text:    `[{"job_id":"a"}`,
			wantErr: true,
		},
		{
			name: "stray bracket before the array never balances",
			// First-to-last bracket matching would return a bogus substring
			// here; the scan starts at the stray bracket and must report it
			// as never closed.
			text:    `text [ before? no: [{"match_notes":"x"}]`,
			wantErr: true,
		},
		{
			name:    "bracket opens inside unterminated string",
			text:    `["unclosed`,
			wantErr: true,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSONArray failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONArrayPicksFirstBalancedArray(t *testing.T) {
	text := `first: [1,2] second: [3,4]`
	got, err := ExtractJSONArray(text)
	if err != nil {
		t.Fatalf("ExtractJSONArray failed: %v", err)
	}
	if got != "[1,2]" {
		t.Errorf("got %q, want %q", got, "[1,2]")
	}
}

func TestExtractArrayElements(t *testing.T) {
	text := "Sure!\n[{\"job_id\":\"a\"},{\"job_id\":\"b\"}]"
	elements, err := ExtractArrayElements(text)
	if err != nil {
		t.Fatalf("ExtractArrayElements failed: %v", err)
	}
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	if string(elements[0]) != `{"job_id":"a"}` {
		t.Errorf("first element = %s", elements[0])
	}
}

func TestExtractArrayElementsEmptyArray(t *testing.T) {
	elements, err := ExtractArrayElements("the model returned []")
	if err != nil {
		t.Fatalf("ExtractArrayElements failed: %v", err)
	}
	if len(elements) != 0 {
		t.Errorf("expected 0 elements, got %d", len(elements))
	}
}

func TestExtractArrayElementsInvalidJSON(t *testing.T) {
	// Balanced brackets but not valid JSON between them.
	_, err := ExtractArrayElements(`[{"job_id": }]`)
	if err == nil {
		t.Fatal("expected error for invalid JSON inside the array")
	}
}
