package main

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/frontmatter"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var postPage = template.Must(template.New("post").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<article>
<header>
<h1>{{.Title}}</h1>
<p><time datetime="{{.ISODate}}">{{.DisplayDate}}</time> • {{.ReadingTime}}</p>
</header>
{{.Body}}
</article>
</body>
</html>
`))

type postView struct {
	Title       string
	ISODate     string
	DisplayDate string
	ReadingTime string
	Body        template.HTML
}

func newDevRouter(module *moduleResources) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(requestLogger(module.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	preview := postPreview(module)
	r.Get("/posts/{topic}/{slug}", preview)
	r.Get("/posts/{slug}", preview)
	r.Handle("/*", http.FileServer(http.Dir(module.config.Feed.PublicDir)))
	return r
}

func postPreview(module *moduleResources) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel := path.Join(chi.URLParam(r, "topic"), chi.URLParam(r, "slug")+module.config.Content.Extension)
		if !fs.ValidPath(rel) {
			http.NotFound(w, r)
			return
		}

		post, err := module.loader.LoadFile(r.Context(), rel)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			http.NotFound(w, r)
			return
		case errors.Is(err, frontmatter.ErrInvalid):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		case err != nil:
			module.logger.Error("serve.preview.load_failed", "path", rel, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		tree, err := module.renderer.Render(r.Context(), post.Content)
		if err != nil {
			module.logger.Error("serve.preview.render_failed", "path", rel, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := postPage.Execute(w, postView{
			Title:       post.Title,
			ISODate:     post.Date.UTC().Format(time.RFC3339),
			DisplayDate: content.FormatDate(post.Date),
			ReadingTime: content.FormatReadingTime(post.ReadingTime),
			// The tree only carries allow-listed elements and attributes.
			Body: template.HTML(tree.HTML()),
		}); err != nil {
			module.logger.Warn("serve.preview.write_failed", "path", rel, "error", err)
		}
	}
}

func requestLogger(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("serve.request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
