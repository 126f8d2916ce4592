package content

import (
	"errors"
	"fmt"
)

var (
	// ErrContentRootMissing indicates the configured content directory does not exist.
	ErrContentRootMissing = errors.New("content: content root does not exist")
	// ErrDuplicatePost indicates two documents resolved to the same (topic, slug) key.
	ErrDuplicatePost = errors.New("content: duplicate post")
	// ErrPostNotFound is returned by Store lookups for unknown keys.
	ErrPostNotFound = errors.New("content: post not found")
	// ErrInvalidSerializedPost indicates an artifact record could not be hydrated.
	ErrInvalidSerializedPost = errors.New("content: invalid serialized post")
)

// DuplicatePostError names both documents that collided on a post key.
type DuplicatePostError struct {
	Topic  string
	Slug   string
	First  string
	Second string
}

func (e *DuplicatePostError) Error() string {
	return fmt.Sprintf("content: duplicate post %s/%s declared by %s and %s", e.Topic, e.Slug, e.First, e.Second)
}

func (e *DuplicatePostError) Unwrap() error {
	return ErrDuplicatePost
}
