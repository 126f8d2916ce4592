package buildcmd

import (
	"github.com/goliatone/go-blog/internal/generator"
)

const (
	buildContentMessageType = "blog.build.content"
	buildFeedMessageType    = "blog.build.feed"
	buildSiteMessageType    = "blog.build.site"
)

// ResultCallback receives the BuildResult produced by a handler. It is
// invoked synchronously, also when the build fails part way.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope wraps a build result with the operation that produced it.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildContentCommand writes the content module artifact.
type BuildContentCommand struct {
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildContentCommand) Type() string { return buildContentMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (BuildContentCommand) Validate() error { return nil }

// BuildFeedCommand writes the RSS feed and its preview page.
type BuildFeedCommand struct {
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildFeedCommand) Type() string { return buildFeedMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (BuildFeedCommand) Validate() error { return nil }

// BuildSiteCommand writes every artifact from one corpus load.
type BuildSiteCommand struct {
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (BuildSiteCommand) Validate() error { return nil }

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return true
	}
	return g.GeneratorEnabled()
}
