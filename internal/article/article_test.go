package article

import (
	"encoding/json"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World! 2025", "hello-world-2025"},
		{"  Spaces   and___underscores--dashes ", "spaces-and-underscores-dashes"},
		{"Markets & Money: What's Next?", "markets-money-whats-next"},
		{"", ""},
		{"---", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	first := Slugify("Hello, World! 2025")
	for i := 0; i < 10; i++ {
		if got := Slugify("Hello, World! 2025"); got != first {
			t.Fatalf("Slugify not deterministic: %q vs %q", got, first)
		}
	}
}

func TestStripHTML(t *testing.T) {
	if got := StripHTML("<p>Hello <b>world</b></p>"); got != "Hello world" {
		t.Errorf("StripHTML = %q, want %q", got, "Hello world")
	}
	if got := StripHTML("plain text stays"); got != "plain text stays" {
		t.Errorf("StripHTML changed plain text: %q", got)
	}
}

func TestWordsStripsMarkup(t *testing.T) {
	if got := Words("<p>one two</p> <div>three</div>"); got != 3 {
		t.Errorf("Words = %d, want 3", got)
	}
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 1},
		{90, 1},
		{300, 2},
		{400, 2},
		{1000, 5},
	}
	for _, c := range cases {
		if got := ReadingTime(c.words); got != c.want {
			t.Errorf("ReadingTime(%d) = %d, want %d", c.words, got, c.want)
		}
	}
}

func TestContentKey(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "ABCDEFGHIJ" // 300 chars total
	}
	key := ContentKey("  " + long)
	if len([]rune(key)) != 200 {
		t.Errorf("ContentKey length = %d, want 200", len([]rune(key)))
	}
	if key != ContentKey(long) {
		t.Errorf("ContentKey should trim surrounding whitespace before slicing")
	}
	if ContentKey("") != "" || ContentKey("   ") != "" {
		t.Errorf("ContentKey of empty content should be empty")
	}
	if ContentKey("Short Body") != "short body" {
		t.Errorf("ContentKey should lowercase: %q", ContentKey("Short Body"))
	}
}

func TestFlexStringAcceptsNumbers(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(`{"id": 42, "title": "t"}`), &a); err != nil {
		t.Fatalf("unmarshal numeric id: %v", err)
	}
	if a.ID != "42" {
		t.Errorf("ID = %q, want %q", a.ID, "42")
	}
	n, ok := a.ID.Int()
	if !ok || n != 42 {
		t.Errorf("ID.Int() = %d,%v, want 42,true", n, ok)
	}
}

func TestStringListAcceptsCommaString(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(`{"tags": "ai, tech , ,news"}`), &a); err != nil {
		t.Fatalf("unmarshal string tags: %v", err)
	}
	want := []string{"ai", "tech", "news"}
	if len(a.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", a.Tags, want)
	}
	for i := range want {
		if a.Tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, a.Tags[i], want[i])
		}
	}

	var b Article
	if err := json.Unmarshal([]byte(`{"tags": ["one","two"]}`), &b); err != nil {
		t.Fatalf("unmarshal list tags: %v", err)
	}
	if len(b.Tags) != 2 {
		t.Errorf("list tags = %v", b.Tags)
	}
}
