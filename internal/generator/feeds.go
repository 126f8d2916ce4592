package generator

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/content"
)

// RFC822Layout matches the UTC string form feed readers expect in pubDate.
const RFC822Layout = "Mon, 02 Jan 2006 15:04:05 GMT"

type feedItem struct {
	Title       string
	Description string
	Link        string
	GUID        string
	PublishedAt time.Time
	Categories  []string
	ReadingTime int
}

// buildFeedItems keeps the newest max posts, newest first. Posts sharing a
// date keep their incoming order.
func buildFeedItems(posts []content.Post, baseURL string, max int) []feedItem {
	ordered := append([]content.Post(nil), posts...)
	content.SortByDateDesc(ordered)
	if max > 0 && len(ordered) > max {
		ordered = ordered[:max]
	}

	items := make([]feedItem, 0, len(ordered))
	for _, post := range ordered {
		link := PostURL(baseURL, post.Topic, post.Slug)
		items = append(items, feedItem{
			Title:       post.Title,
			Description: post.Description,
			Link:        link,
			GUID:        link,
			PublishedAt: post.Date.UTC(),
			Categories:  append([]string(nil), post.Tags...),
			ReadingTime: post.ReadingTime,
		})
	}
	return items
}

// PostURL returns the public URL of a post: {base}/blog/{topic}/{slug}.
func PostURL(baseURL, topic, slug string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if strings.TrimSpace(topic) == "" {
		return fmt.Sprintf("%s/blog/%s", base, slug)
	}
	return fmt.Sprintf("%s/blog/%s/%s", base, topic, slug)
}

// FeedURL returns the self link of the feed.
func FeedURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/" + FeedFileName
}

func (s *service) writeFeed(ctx context.Context, writer artifactWriter, dirCache map[string]struct{}, posts []content.Post) ([]Artifact, int, []string, error) {
	var warnings []string
	if len(posts) == 0 {
		warnings = append(warnings, "No blog posts found. RSS feed will be empty.")
		s.deps.Logger.Warn("generator.feed.empty", "message", warnings[0])
	}

	generatedAt := s.now()
	items := buildFeedItems(posts, s.cfg.BaseURL, s.cfg.MaxFeedItems)

	stylesheets, err := s.loadStylesheets()
	if err != nil {
		return nil, 0, warnings, err
	}

	rss := buildRSSFeed(s.cfg.Site, s.cfg.BaseURL, items, generatedAt)
	preview, err := renderFeedPreview(s.cfg.Site, s.cfg.BaseURL, items, stylesheets)
	if err != nil {
		return nil, 0, warnings, err
	}

	rssPath := joinOutputPath(s.cfg.PublicDir, FeedFileName)
	rssArtifact, err := s.write(ctx, writer, dirCache, rssPath, categoryFeed, "application/rss+xml", []byte(rss))
	if err != nil {
		return nil, 0, warnings, err
	}
	previewPath := joinOutputPath(s.cfg.PublicDir, PreviewFileName)
	previewArtifact, err := s.write(ctx, writer, dirCache, previewPath, categoryPreview, "text/html; charset=utf-8", preview)
	if err != nil {
		return nil, 0, warnings, err
	}

	s.deps.Logger.Info("generator.feed.written",
		"path", rssPath,
		"preview", previewPath,
		"items", len(items),
	)
	return []Artifact{rssArtifact, previewArtifact}, len(items), warnings, nil
}

func buildRSSFeed(site SiteMetadata, baseURL string, items []feedItem, generatedAt time.Time) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(site.Title)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(site.Description)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(baseURL)))
	builder.WriteString(fmt.Sprintf(`    <atom:link href="%s" rel="self" type="application/rss+xml" />`+"\n", escapeXMLAttr(FeedURL(baseURL))))
	builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(site.Language)))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(RFC822Layout)))
	builder.WriteString(fmt.Sprintf("    <generator>%s</generator>\n", escapeXML(site.Generator)))
	for _, item := range items {
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", cdata(item.Title)))
		builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", cdata(item.Description)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PublishedAt.UTC().Format(RFC822Layout)))
		for _, category := range item.Categories {
			builder.WriteString(fmt.Sprintf("      <category>%s</category>\n", cdata(category)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

// cdata wraps value in a CDATA section, splitting any terminator it contains.
func cdata(value string) string {
	return "<![CDATA[" + strings.ReplaceAll(value, "]]>", "]]]]><![CDATA[>") + "]]>"
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}

func escapeXMLAttr(value string) string {
	return html.EscapeString(value)
}
