package generator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/goliatone/go-blog/internal/content"
)

// ErrStylesheetUnreadable reports a configured preview stylesheet that could not be read.
var ErrStylesheetUnreadable = errors.New("generator: stylesheet unreadable")

//go:embed templates/rss_viewer.html.tmpl
var templateFS embed.FS

var previewTemplate = template.Must(template.ParseFS(templateFS, "templates/rss_viewer.html.tmpl"))

type previewItem struct {
	Title       string
	Link        string
	ISODate     string
	DisplayDate string
	ReadingTime string
	Description string
	Tags        []string
}

type previewPage struct {
	Site        SiteMetadata
	BaseURL     string
	FeedURL     string
	Stylesheets []template.CSS
	Items       []previewItem
}

func (s *service) loadStylesheets() ([]template.CSS, error) {
	sheets := make([]template.CSS, 0, len(s.cfg.Stylesheets))
	for _, name := range s.cfg.Stylesheets {
		if strings.TrimSpace(name) == "" {
			continue
		}
		raw, err := s.readFile(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrStylesheetUnreadable, name, err)
		}
		sheets = append(sheets, template.CSS(raw))
	}
	return sheets, nil
}

func readStylesheet(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func renderFeedPreview(site SiteMetadata, baseURL string, items []feedItem, stylesheets []template.CSS) ([]byte, error) {
	page := previewPage{
		Site:        site,
		BaseURL:     baseURL,
		FeedURL:     FeedURL(baseURL),
		Stylesheets: stylesheets,
		Items:       make([]previewItem, 0, len(items)),
	}
	for _, item := range items {
		page.Items = append(page.Items, previewItem{
			Title:       item.Title,
			Link:        item.Link,
			ISODate:     content.FormatDateTime(item.PublishedAt),
			DisplayDate: content.FormatDate(item.PublishedAt),
			ReadingTime: content.FormatReadingTime(item.ReadingTime),
			Description: item.Description,
			Tags:        item.Categories,
		})
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("generator: render feed preview: %w", err)
	}
	return buf.Bytes(), nil
}
