package main

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/spf13/cobra"
)

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var showHeadings bool
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print the sanitized HTML of one post",
		Long: `render validates the frontmatter of one post and prints the HTML produced
by the sanitizing markdown pipeline. The path is relative to the content
directory; a path that includes the content directory is accepted too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := opts.module()
			if err != nil {
				return err
			}
			rel := contentRelativePath(module.config.Content.Dir, args[0])
			post, err := module.loader.LoadFile(cmd.Context(), rel)
			if err != nil {
				return err
			}
			tree, err := module.renderer.Render(cmd.Context(), post.Content)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showHeadings {
				for _, heading := range tree.Headings() {
					fmt.Fprintf(out, "%sh%d #%s %s\n", strings.Repeat("  ", heading.Level-1), heading.Level, heading.ID, heading.Text)
				}
				return nil
			}
			fmt.Fprintf(out, "<!-- %s · %s · %s -->\n", post.Title, content.FormatDate(post.Date), content.FormatReadingTime(post.ReadingTime))
			fmt.Fprintln(out, tree.HTML())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showHeadings, "headings", false, "print the heading outline instead of HTML")
	return cmd
}

func contentRelativePath(contentDir, arg string) string {
	rel := filepath.ToSlash(strings.TrimSpace(arg))
	dir := strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(contentDir)), "/")
	if dir != "" && dir != "." {
		rel = strings.TrimPrefix(rel, dir+"/")
	}
	return path.Clean(rel)
}
