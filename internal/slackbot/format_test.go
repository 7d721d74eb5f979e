package slackbot

import "testing"

func TestFormatResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "literal escapes become control characters",
			in:   `*Title*\n\nBody text\twith a tab`,
			want: "*Title*\n\nBody text\twith a tab",
		},
		{
			name: "blank line inserted after title",
			in:   "*Title*\nBody starts here",
			want: "*Title*\n\nBody starts here",
		},
		{
			name: "already separated text unchanged",
			in:   "*Title*\n\nBody starts here",
			want: "*Title*\n\nBody starts here",
		},
		{
			name: "no line breaks at all",
			in:   "just one line of text",
			want: "just one line of text",
		},
		{
			name: "only first line break doubled",
			in:   "*Title*\nfirst\nsecond",
			want: "*Title*\n\nfirst\nsecond",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResponse(tt.in); got != tt.want {
				t.Errorf("FormatResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatResponse_Idempotent(t *testing.T) {
	inputs := []string{
		"*Title*\nBody starts here",
		`*Title*\nBody starts here`,
		"*Title*\n\nAlready fine\nwith more lines",
	}

	for _, in := range inputs {
		once := FormatResponse(in)
		twice := FormatResponse(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}
