package content

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayDateLayout is the human readable post date.
const DisplayDateLayout = "January 2, 2006"

var topicDisplayNames = map[string]string{
	"css":             "CSS",
	"wezterm":         "WezTerm",
	"typescript":      "TypeScript",
	"web-development": "Web Development",
}

// FormatDate renders date in UTC using DisplayDateLayout.
func FormatDate(date time.Time) string {
	return date.UTC().Format(DisplayDateLayout)
}

// FormatDateTime renders date as the ISO timestamp used in <time> elements.
func FormatDateTime(date time.Time) string {
	return date.UTC().Format(ISODateLayout)
}

// FormatReadingTime renders a reading time annotation.
func FormatReadingTime(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}

// TopicDisplayName returns the presentation name of a topic directory.
// Known topics keep their brand casing; others are title cased with
// hyphens read as word breaks.
func TopicDisplayName(topic string) string {
	if name, ok := topicDisplayNames[topic]; ok {
		return name
	}
	if topic == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(topic, "-", " "))
}
