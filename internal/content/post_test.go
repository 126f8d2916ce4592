package content

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/frontmatter"
)

func TestReadingTime(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "empty", body: "", want: 0},
		{name: "whitespace", body: " \n\t ", want: 0},
		{name: "one word", body: "hello", want: 1},
		{name: "two hundred", body: words(200), want: 1},
		{name: "two hundred one", body: words(201), want: 2},
		{name: "four hundred", body: words(400), want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReadingTime(tc.body); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestLocate(t *testing.T) {
	cases := []struct {
		path  string
		topic string
		slug  string
	}{
		{path: "css/a.md", topic: "css", slug: "a"},
		{path: "2024/wezterm/b.md", topic: "wezterm", slug: "b"},
		{path: "about.md", topic: "", slug: "about"},
		{path: "css\\flex.md", topic: "css", slug: "flex"},
	}
	for _, tc := range cases {
		topic, slug := Locate(tc.path, ".md")
		if topic != tc.topic || slug != tc.slug {
			t.Fatalf("%s: expected (%q, %q), got (%q, %q)", tc.path, tc.topic, tc.slug, topic, slug)
		}
	}
}

func TestSerializeUsesISODates(t *testing.T) {
	post := NewPost("css/a.md", ".md", frontmatter.Frontmatter{
		Title:       "A",
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Description: "d",
	}, "one two three")

	serialized := Serialize(post)
	if serialized.Date != "2024-01-01T00:00:00.000Z" {
		t.Fatalf("unexpected date encoding %q", serialized.Date)
	}
	if serialized.Tags == nil || len(serialized.Tags) != 0 {
		t.Fatalf("expected empty tag slice, got %#v", serialized.Tags)
	}
	if serialized.ReadingTime != 1 || serialized.Topic != "css" || serialized.Slug != "a" {
		t.Fatalf("unexpected derived fields %+v", serialized)
	}

	hydrated, err := Hydrate(serialized)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if !hydrated.Date.Equal(post.Date) || hydrated.ID != post.ID {
		t.Fatalf("hydrated post differs: %+v vs %+v", hydrated, post)
	}
}

func TestHydrateRejectsBadDate(t *testing.T) {
	_, err := Hydrate(SerializedPost{Slug: "a", Topic: "css", Date: "yesterday"})
	if err == nil || !strings.Contains(err.Error(), "invalid serialized post") {
		t.Fatalf("expected invalid serialized post error, got %v", err)
	}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}
