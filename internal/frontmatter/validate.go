package frontmatter

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Frontmatter is the validated, normalised metadata of a post.
type Frontmatter struct {
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
}

type fieldCheck struct {
	key    string
	reason string
	rules  []validation.Rule
}

var fieldChecks = []fieldCheck{
	{
		key:    "title",
		reason: reasonTitle,
		rules:  []validation.Rule{validation.By(nonBlankString("blog.frontmatter.title_invalid", "title must be a non-empty string"))},
	},
	{
		key:    "date",
		reason: reasonDate,
		rules:  []validation.Rule{validation.By(dateType)},
	},
	{
		key:    "description",
		reason: reasonDescription,
		rules:  []validation.Rule{validation.By(nonBlankString("blog.frontmatter.description_invalid", "description must be a non-empty string"))},
	},
}

// Validate checks record against the post schema and returns the normalised
// frontmatter. Fields are checked in order (title, date, description) and
// the first failure is reported; no partial value is returned on error.
func Validate(record Record, sourceID string) (Frontmatter, error) {
	if record == nil {
		return Frontmatter{}, newValidationError(sourceID, reasonMissing, nil)
	}
	if len(record) == 0 {
		return Frontmatter{}, newValidationError(sourceID, reasonEmpty, nil)
	}

	for _, check := range fieldChecks {
		if err := validation.Validate(record[check.key], check.rules...); err != nil {
			return Frontmatter{}, newValidationError(sourceID, check.reason, err)
		}
	}

	date, err := ParseDate(record["date"])
	if err != nil {
		return Frontmatter{}, newValidationError(sourceID,
			fmt.Sprintf("Invalid date %q. Please use a valid date format", fmt.Sprint(record["date"])), err)
	}

	return Frontmatter{
		Title:       strings.TrimSpace(record["title"].(string)),
		Date:        date,
		Description: strings.TrimSpace(record["description"].(string)),
		Tags:        normalizeTags(record["tags"]),
	}, nil
}

// Parse splits source and validates its frontmatter in one step.
func Parse(source []byte, sourceID string) (Frontmatter, []byte, error) {
	record, body, err := Split(source, sourceID)
	if err != nil {
		return Frontmatter{}, nil, err
	}
	meta, err := Validate(record, sourceID)
	if err != nil {
		return Frontmatter{}, nil, err
	}
	return meta, body, nil
}

func nonBlankString(code, message string) validation.RuleFunc {
	return func(value any) error {
		text, ok := value.(string)
		if !ok || strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func dateType(value any) error {
	if !isDateKind(value) {
		return validation.NewError("blog.frontmatter.date_invalid", "date must be a string, number or time value")
	}
	return nil
}

// normalizeTags is lenient: anything that is not a sequence yields an empty
// slice, and nil or nested mapping entries inside a sequence are skipped.
func normalizeTags(value any) []string {
	switch typed := value.(type) {
	case []string:
		return append([]string{}, typed...)
	case []any:
		tags := make([]string, 0, len(typed))
		for _, item := range typed {
			switch v := item.(type) {
			case nil, map[string]any, []any:
				continue
			case string:
				tags = append(tags, v)
			default:
				tags = append(tags, fmt.Sprint(v))
			}
		}
		return tags
	default:
		return []string{}
	}
}
