package llm

import "testing"

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{
			name:  "bare array",
			in:    `[{"title":"T"}]`,
			want:  `[{"title":"T"}]`,
			found: true,
		},
		{
			name:  "fenced json block",
			in:    "```json\n[{\"title\":\"T\"}]\n```",
			want:  `[{"title":"T"}]`,
			found: true,
		},
		{
			name:  "prose around array",
			in:    "Here are the topics:\n[{\"title\":\"T\"}]\nHope that helps!",
			want:  `[{"title":"T"}]`,
			found: true,
		},
		{
			name:  "nested arrays balanced",
			in:    `result: [1, [2, 3], 4] trailing`,
			want:  `[1, [2, 3], 4]`,
			found: true,
		},
		{
			name:  "bracket inside string ignored",
			in:    `[{"title":"a ] tricky [ one"}]`,
			want:  `[{"title":"a ] tricky [ one"}]`,
			found: true,
		},
		{
			name:  "no array",
			in:    "sorry, I cannot do that",
			found: false,
		},
		{
			name:  "unterminated array",
			in:    `[{"title":"T"`,
			found: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractJSONArray(tt.in)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	got, found := ExtractJSONObject("```json\n{\"a\": {\"b\": 1}}\n```")
	if !found || got != `{"a": {"b": 1}}` {
		t.Errorf("got %q found=%v", got, found)
	}
	if _, found := ExtractJSONObject("no object here"); found {
		t.Error("should not find object")
	}
}
