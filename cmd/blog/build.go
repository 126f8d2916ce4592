package main

import (
	"context"
	"fmt"
	"io"

	buildcmd "github.com/goliatone/go-blog/internal/commands/build"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/spf13/cobra"
)

func newContentCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Generate the content module from the markdown posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.module()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Processing content and generating content module...")
			return module.handlers.content.Execute(cmd.Context(), buildcmd.BuildContentCommand{
				DryRun:         dryRun,
				ResultCallback: resultPrinter(cmd.OutOrStdout()),
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and render without writing files")
	return cmd
}

func newFeedCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Generate rss.xml and rss-viewer.html",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.module()
			if err != nil {
				return err
			}
			return module.handlers.feed.Execute(cmd.Context(), buildcmd.BuildFeedCommand{
				DryRun:         dryRun,
				ResultCallback: resultPrinter(cmd.OutOrStdout()),
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and render without writing files")
	return cmd
}

func newBuildCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the content module and the RSS feed in one pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.module()
			if err != nil {
				return err
			}
			return buildSite(cmd.Context(), cmd.OutOrStdout(), module, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and render without writing files")
	return cmd
}

func buildSite(ctx context.Context, w io.Writer, module *moduleResources, dryRun bool) error {
	return module.handlers.site.Execute(ctx, buildcmd.BuildSiteCommand{
		DryRun:         dryRun,
		ResultCallback: resultPrinter(w),
	})
}

func resultPrinter(w io.Writer) buildcmd.ResultCallback {
	return func(env buildcmd.ResultEnvelope) {
		printResult(w, env.Result)
	}
}

func printResult(w io.Writer, result *generator.BuildResult) {
	if result == nil {
		return
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
	for _, artifact := range result.Artifacts {
		switch artifact.Category {
		case generator.ArtifactContent:
			fmt.Fprintf(w, "Generated content loader for %d files at %s\n", result.Posts, artifact.Path)
		case generator.ArtifactFeed:
			fmt.Fprintf(w, "Generated RSS feed with %d items at %s\n", result.FeedItems, artifact.Path)
		case generator.ArtifactPreview:
			fmt.Fprintf(w, "Generated HTML preview at %s\n", artifact.Path)
		}
	}
	if result.DryRun {
		fmt.Fprintln(w, "Dry run: nothing was written")
	}
}
