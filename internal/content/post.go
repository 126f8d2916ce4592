package content

import (
	"fmt"
	"math"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/frontmatter"
	"github.com/goliatone/go-blog/internal/identity"
)

// ISODateLayout matches the millisecond precision UTC form used in the
// generated artifact.
const ISODateLayout = "2006-01-02T15:04:05.000Z"

// WordsPerMinute drives the reading time estimate.
const WordsPerMinute = 200

// Metadata is the validated frontmatter plus fields derived from the
// document location and body.
type Metadata struct {
	Title       string
	Date        time.Time
	Description string
	Tags        []string
	Slug        string
	Topic       string
	ReadingTime int
}

// Post joins metadata with the unprocessed markdown body.
type Post struct {
	Metadata
	ID      uuid.UUID
	Path    string
	Content string
}

// Key returns the corpus-wide unique key of the post.
func (p Post) Key() string {
	return p.Topic + "/" + p.Slug
}

// SerializedPost is the JSON form stored in the content artifact.
type SerializedPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Slug        string   `json:"slug"`
	Topic       string   `json:"topic"`
	ReadingTime int      `json:"readingTime"`
	Content     string   `json:"content"`
}

// Locate derives the topic (immediate parent directory) and slug (file
// name without extension) of a relative content path. Files at the root
// of the content tree have an empty topic.
func Locate(relPath, ext string) (topic, slug string) {
	if ext == "" {
		ext = DefaultExtension
	}
	clean := path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	dir, file := path.Split(clean)
	slug = strings.TrimSuffix(file, ext)
	dir = strings.TrimSuffix(dir, "/")
	if dir != "" && dir != "." {
		topic = path.Base(dir)
	}
	return topic, slug
}

// ReadingTime estimates whole minutes to read body at WordsPerMinute.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// NewPost assembles a Post from a document path, its validated frontmatter
// and markdown body.
func NewPost(relPath, ext string, meta frontmatter.Frontmatter, body string) Post {
	topic, slug := Locate(relPath, ext)
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	return Post{
		Metadata: Metadata{
			Title:       meta.Title,
			Date:        meta.Date.UTC(),
			Description: meta.Description,
			Tags:        tags,
			Slug:        slug,
			Topic:       topic,
			ReadingTime: ReadingTime(body),
		},
		ID:      identity.PostUUID(topic, slug),
		Path:    relPath,
		Content: body,
	}
}

// Serialize converts a post into its artifact form.
func Serialize(p Post) SerializedPost {
	tags := append([]string{}, p.Tags...)
	return SerializedPost{
		ID:          p.ID.String(),
		Title:       p.Title,
		Date:        p.Date.UTC().Format(ISODateLayout),
		Description: p.Description,
		Tags:        tags,
		Slug:        p.Slug,
		Topic:       p.Topic,
		ReadingTime: p.ReadingTime,
		Content:     p.Content,
	}
}

// Hydrate reverses Serialize. Records without an id receive the
// deterministic post id.
func Hydrate(s SerializedPost) (Post, error) {
	date, err := time.Parse(time.RFC3339Nano, s.Date)
	if err != nil {
		return Post{}, fmt.Errorf("%w: %s/%s date %q: %v", ErrInvalidSerializedPost, s.Topic, s.Slug, s.Date, err)
	}
	if strings.TrimSpace(s.Slug) == "" {
		return Post{}, fmt.Errorf("%w: missing slug", ErrInvalidSerializedPost)
	}

	id := identity.PostUUID(s.Topic, s.Slug)
	if s.ID != "" {
		parsed, err := uuid.Parse(s.ID)
		if err != nil {
			return Post{}, fmt.Errorf("%w: %s/%s id %q: %v", ErrInvalidSerializedPost, s.Topic, s.Slug, s.ID, err)
		}
		id = parsed
	}

	return Post{
		Metadata: Metadata{
			Title:       s.Title,
			Date:        date.UTC(),
			Description: s.Description,
			Tags:        append([]string{}, s.Tags...),
			Slug:        s.Slug,
			Topic:       s.Topic,
			ReadingTime: s.ReadingTime,
		},
		ID:      id,
		Content: s.Content,
	}, nil
}
