package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/jamsa/articlegen/internal/retry"
	"github.com/jamsa/articlegen/internal/trends"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"title": "t"}`, `{"title": "t"}`},
		{"```json\n{\"title\": \"t\"}\n```", `{"title": "t"}`},
		{"```\n{\"title\": \"t\"}\n```", `{"title": "t"}`},
		{"  {\"title\": \"t\"}  ", `{"title": "t"}`},
	}
	for _, c := range cases {
		if got := stripFences(c.in); got != c.want {
			t.Errorf("stripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	kw := trends.Keyword{Term: "cricket world cup", Traffic: "200,000+", Region: "IN"}
	prompt := buildPrompt(kw)
	for _, want := range []string{"cricket world cup", "200,000+", "IN", "structuredData"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	noTraffic := buildPrompt(trends.Keyword{Term: "x", Region: "US"})
	if !strings.Contains(noTraffic, "unknown") {
		t.Errorf("prompt should report unknown traffic")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), "", "gemini-1.5-flash", nil, nil, retry.Config{}); err == nil {
		t.Fatalf("empty api key should fail")
	}
}
