package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	DefaultBaseURL         = "https://rjleyva-writes.pages.dev"
	DefaultMaxFeedItems    = 20
	DefaultModulePrefix    = "@/content/blog"
	DefaultContentOutput   = "src/lib/content/generatedContent.json"
	DefaultPublicDir       = "public"
	DefaultSiteTitle       = "RJ Leyva's Blog"
	DefaultSiteLanguage    = "en-us"
	DefaultSiteDescription = "RJ Leyva's personal blog documenting web development insights through writing."

	FeedFileName    = "rss.xml"
	PreviewFileName = "rss-viewer.html"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled = errors.New("generator: service disabled")
	errSourceRequired  = errors.New("generator: post source is required")
)

// Service describes the build-time artifact generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	BuildContent(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	BuildFeed(ctx context.Context, opts BuildOptions) (*BuildResult, error)
}

// PostSource yields the validated corpus. *content.Loader satisfies it.
type PostSource interface {
	Load(ctx context.Context) (*content.Corpus, error)
}

// SiteMetadata carries the channel level feed details.
type SiteMetadata struct {
	Title       string
	Description string
	Language    string
	Generator   string
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	// OutputDir is the root every relative output path resolves against.
	OutputDir string
	// ContentOutput is the content artifact path.
	ContentOutput string
	// ModulePrefix prefixes every raw content binding key.
	ModulePrefix string
	// PublicDir receives rss.xml and rss-viewer.html.
	PublicDir    string
	BaseURL      string
	MaxFeedItems int
	Site         SiteMetadata
	// Stylesheets are inlined verbatim into the feed preview, in order.
	Stylesheets []string
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	DryRun bool
}

// Artifact categories reported in BuildResult.Artifacts.
const (
	ArtifactContent = string(categoryContent)
	ArtifactFeed    = string(categoryFeed)
	ArtifactPreview = string(categoryPreview)
)

// Artifact records one generated output.
type Artifact struct {
	Path        string
	Category    string
	ContentType string
	Size        int64
	Checksum    string
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	Posts     int
	FeedItems int
	Artifacts []Artifact
	Warnings  []string
	Duration  time.Duration
	DryRun    bool
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Source PostSource
	Logger interfaces.Logger
}

// NewService wires a generator implementation with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{
		cfg:       cfg.withDefaults(),
		deps:      deps,
		now:       time.Now,
		newWriter: newArtifactWriter,
		readFile:  readStylesheet,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg       Config
	deps      Dependencies
	now       func() time.Time
	newWriter func(root string, dryRun bool) artifactWriter
	readFile  func(path string) ([]byte, error)
}

type disabledService struct{}

func (cfg Config) withDefaults() Config {
	if strings.TrimSpace(cfg.ContentOutput) == "" {
		cfg.ContentOutput = DefaultContentOutput
	}
	if strings.TrimSpace(cfg.ModulePrefix) == "" {
		cfg.ModulePrefix = DefaultModulePrefix
	}
	if strings.TrimSpace(cfg.PublicDir) == "" {
		cfg.PublicDir = DefaultPublicDir
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxFeedItems <= 0 {
		cfg.MaxFeedItems = DefaultMaxFeedItems
	}
	if strings.TrimSpace(cfg.Site.Title) == "" {
		cfg.Site.Title = DefaultSiteTitle
	}
	if strings.TrimSpace(cfg.Site.Description) == "" {
		cfg.Site.Description = DefaultSiteDescription
	}
	if strings.TrimSpace(cfg.Site.Language) == "" {
		cfg.Site.Language = DefaultSiteLanguage
	}
	if strings.TrimSpace(cfg.Site.Generator) == "" {
		cfg.Site.Generator = cfg.Site.Title
	}
	return cfg
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return s.run(ctx, opts, true, true)
}

func (s *service) BuildContent(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return s.run(ctx, opts, true, false)
}

func (s *service) BuildFeed(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return s.run(ctx, opts, false, true)
}

func (s *service) run(ctx context.Context, opts BuildOptions, withContent, withFeed bool) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Source == nil {
		return nil, errSourceRequired
	}

	start := time.Now()
	corpus, err := s.deps.Source.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Posts:  len(corpus.Posts),
		DryRun: opts.DryRun,
	}
	writer := s.newWriter(s.cfg.OutputDir, opts.DryRun)
	dirCache := map[string]struct{}{}

	if withContent {
		artifact, err := s.writeContentModule(ctx, writer, dirCache, corpus)
		if err != nil {
			return nil, err
		}
		result.Artifacts = append(result.Artifacts, artifact)
	}

	if withFeed {
		artifacts, items, warnings, err := s.writeFeed(ctx, writer, dirCache, corpus.Posts)
		if err != nil {
			return nil, err
		}
		result.Artifacts = append(result.Artifacts, artifacts...)
		result.FeedItems = items
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.Duration = time.Since(start)
	s.deps.Logger.Info("generator.build.completed",
		"posts", result.Posts,
		"feed_items", result.FeedItems,
		"artifacts", len(result.Artifacts),
		"dry_run", result.DryRun,
		"duration", result.Duration,
	)
	return result, nil
}

func (s *service) write(ctx context.Context, writer artifactWriter, dirCache map[string]struct{}, target string, category writeCategory, contentType string, body []byte) (Artifact, error) {
	if err := ensureDir(ctx, writer, dirCache, path.Dir(target)); err != nil {
		return Artifact{}, err
	}
	checksum := computeHash(body)
	if err := writer.WriteFile(ctx, writeFileRequest{
		Path:        target,
		Content:     strings.NewReader(string(body)),
		Size:        int64(len(body)),
		Category:    category,
		ContentType: contentType,
		Checksum:    checksum,
		Metadata: map[string]string{
			"generated_at": s.now().UTC().Format(time.RFC3339),
		},
	}); err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Path:        target,
		Category:    string(category),
		ContentType: contentType,
		Size:        int64(len(body)),
		Checksum:    checksum,
	}, nil
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.Trim(dir, " ")
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func joinOutputPath(base string, rel string) string {
	if strings.TrimSpace(base) == "" {
		return strings.TrimLeft(rel, "/")
	}
	return path.Join(strings.TrimRight(base, "/"), rel)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) BuildContent(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) BuildFeed(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}
