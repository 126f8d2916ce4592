package content

import (
	"fmt"
	"sort"
)

// TopicSummary describes one topic and how many posts it holds.
type TopicSummary struct {
	Name        string
	DisplayName string
	Count       int
}

// Store is an immutable, date ordered view over a corpus of posts.
type Store struct {
	posts []Post
	index map[string]int
}

// NewStore orders posts by descending date, keeping input order for equal
// dates, and rejects duplicate (topic, slug) pairs.
func NewStore(posts []Post) (*Store, error) {
	ordered := append([]Post(nil), posts...)
	SortByDateDesc(ordered)

	index := make(map[string]int, len(ordered))
	for i, post := range ordered {
		if prev, ok := index[post.Key()]; ok {
			return nil, &DuplicatePostError{
				Topic:  post.Topic,
				Slug:   post.Slug,
				First:  ordered[prev].Path,
				Second: post.Path,
			}
		}
		index[post.Key()] = i
	}
	return &Store{posts: ordered, index: index}, nil
}

// NewStoreFromSerialized hydrates artifact records into a Store.
func NewStoreFromSerialized(records []SerializedPost) (*Store, error) {
	posts := make([]Post, 0, len(records))
	for i, record := range records {
		post, err := Hydrate(record)
		if err != nil {
			return nil, fmt.Errorf("content: hydrate record %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	return NewStore(posts)
}

// SortByDateDesc orders posts newest first using a stable sort.
func SortByDateDesc(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

// All returns every post, newest first.
func (s *Store) All() []Post {
	return append([]Post(nil), s.posts...)
}

// Len reports the number of posts.
func (s *Store) Len() int {
	return len(s.posts)
}

// Recent returns at most limit posts, newest first. A non-positive limit
// returns nothing.
func (s *Store) Recent(limit int) []Post {
	if limit <= 0 {
		return []Post{}
	}
	if limit > len(s.posts) {
		limit = len(s.posts)
	}
	return append([]Post(nil), s.posts[:limit]...)
}

// Get looks a post up by topic and slug.
func (s *Store) Get(topic, slug string) (Post, error) {
	idx, ok := s.index[topic+"/"+slug]
	if !ok {
		return Post{}, fmt.Errorf("%w: %s/%s", ErrPostNotFound, topic, slug)
	}
	return s.posts[idx], nil
}

// ByTopic returns the posts of topic, newest first.
func (s *Store) ByTopic(topic string) []Post {
	out := []Post{}
	for _, post := range s.posts {
		if post.Topic == topic {
			out = append(out, post)
		}
	}
	return out
}

// Topics lists topics alphabetically with their post counts.
func (s *Store) Topics() []TopicSummary {
	counts := map[string]int{}
	for _, post := range s.posts {
		counts[post.Topic]++
	}
	topics := make([]TopicSummary, 0, len(counts))
	for name, count := range counts {
		topics = append(topics, TopicSummary{Name: name, DisplayName: TopicDisplayName(name), Count: count})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics
}
