// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"blogdesk/internal/api"
	"blogdesk/internal/codec"
	"blogdesk/internal/editor"
	"blogdesk/internal/models"
)

var postHeaders = []string{"ID", "TITLE", "SLUG", "CATEGORY", "PUBLISHED"}

func newPostsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List, search and edit posts",
	}
	cmd.AddCommand(
		newPostsListCommand(opts),
		newPostsSearchCommand(opts),
		newPostsCountCommand(opts),
		newPostsGetCommand(opts),
		newPostsCreateCommand(opts),
		newPostsUpdateCommand(opts, false),
		newPostsUpdateCommand(opts, true),
		newPostsDeleteCommand(opts),
		newPostsPreviewCommand(opts),
	)
	return cmd
}

func newPostsListCommand(opts *RootOptions) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ro, err := lf.options(cmd)
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				page, err := app.Posts.List(ctx, ro)
				if err != nil {
					return err
				}
				return printPosts(out, page)
			})
		},
	}
	lf.register(cmd, true)
	return cmd
}

func newPostsSearchCommand(opts *RootOptions) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over posts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro, err := lf.options(cmd)
			if err != nil {
				return err
			}
			ro.Query = strings.Join(args, " ")
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				page, err := app.Posts.Search(ctx, ro)
				if err != nil {
					return err
				}
				return printPosts(out, page)
			})
		},
	}
	lf.register(cmd, true)
	return cmd
}

func newPostsCountCommand(opts *RootOptions) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count posts matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ro, err := lf.options(cmd)
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				n, err := app.Posts.Count(ctx, ro)
				if err != nil {
					return err
				}
				return out.Print(map[string]int64{"count": n}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, n)
					return err
				})
			})
		},
	}
	lf.register(cmd, false)
	return cmd
}

func newPostsGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				p, err := app.Posts.Find(ctx, id)
				if err != nil {
					return err
				}
				return printPost(out, p)
			})
		},
	}
}

// postFields are the editable post flags.
type postFields struct {
	title      string
	slug       string
	summary    string
	body       string
	bodyFile   string
	tags       string
	state      int
	published  string
	categoryID int64
}

func (f *postFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "post title")
	cmd.Flags().StringVar(&f.slug, "slug", "", "URL slug (derived from the title when empty)")
	cmd.Flags().StringVar(&f.summary, "summary", "", "summary (derived from the body when empty)")
	cmd.Flags().StringVar(&f.body, "body", "", "Markdown body")
	cmd.Flags().StringVar(&f.bodyFile, "body-file", "", "read the Markdown body from a file")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma separated tags")
	cmd.Flags().IntVar(&f.state, "state", 0, "workflow state")
	cmd.Flags().StringVar(&f.published, "published", "", "publication date, YYYY-MM-DD")
	cmd.Flags().Int64Var(&f.categoryID, "category-id", 0, "category id")
}

// apply overrides in with every flag set on the command line.
func (f *postFields) apply(cmd *cobra.Command, in editor.Input) (editor.Input, error) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		in.Title = f.title
	}
	if flags.Changed("slug") {
		in.Slug = f.slug
	}
	if flags.Changed("summary") {
		in.Summary = f.summary
	}
	if flags.Changed("body") {
		in.Body = f.body
	}
	if flags.Changed("body-file") {
		data, err := os.ReadFile(f.bodyFile)
		if err != nil {
			return in, fmt.Errorf("read body: %w", err)
		}
		in.Body = string(data)
	}
	if flags.Changed("tags") {
		in.Tags = f.tags
	}
	if flags.Changed("state") {
		state := f.state
		in.State = &state
	}
	if flags.Changed("published") {
		in.PublishedDate = f.published
	}
	if flags.Changed("category-id") {
		id := f.categoryID
		in.CategoryID = &id
	}
	return in, nil
}

// inputFromPost fills the form input from a loaded post.
func inputFromPost(p *models.Post) editor.Input {
	in := editor.Input{
		Title:   p.Title,
		Slug:    deref(p.Slug),
		Summary: deref(p.Summary),
		Body:    deref(p.Body),
		Tags:    deref(p.Tags),
		State:   p.State,
	}
	if p.PublishedDate != nil && p.PublishedDate.IsValid() {
		in.PublishedDate = p.PublishedDate.Time().Format(time.DateOnly)
	}
	if p.Category != nil {
		in.CategoryID = p.Category.ID
	}
	return in
}

func newPostsCreateCommand(opts *RootOptions) *cobra.Command {
	var pf postFields
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := pf.apply(cmd, editor.Input{})
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				form, err := app.Editor.Load(ctx, nil)
				if err != nil {
					return err
				}
				post, err := app.Editor.Apply(form, in)
				if err != nil {
					return err
				}
				saved, err := app.Editor.Save(ctx, post)
				if err != nil {
					return err
				}
				return printPost(out, saved)
			})
		},
	}
	pf.register(cmd)
	return cmd
}

// newPostsUpdateCommand builds "update" (PUT) or, when partial is set,
// "patch" (merge-patch). Both start from the stored post, so flags that
// are not given keep their current values.
func newPostsUpdateCommand(opts *RootOptions, partial bool) *cobra.Command {
	var pf postFields
	use, short := "update <id>", "Replace a post"
	if partial {
		use, short = "patch <id>", "Partially update a post"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				form, err := app.Editor.Load(ctx, &id)
				if err != nil {
					return err
				}
				in, err := pf.apply(cmd, inputFromPost(form.Post))
				if err != nil {
					return err
				}
				post, err := app.Editor.Apply(form, in)
				if err != nil {
					return err
				}

				var saved *models.Post
				if partial {
					saved, err = app.Posts.PartialUpdate(ctx, post)
				} else {
					saved, err = app.Editor.Save(ctx, post)
				}
				if err != nil {
					return err
				}
				return printPost(out, saved)
			})
		},
	}
	pf.register(cmd)
	return cmd
}

func newPostsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				if err := app.Posts.Remove(ctx, id); err != nil {
					return err
				}
				return out.Print(map[string]int64{"deleted": id}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "deleted post %d\n", id)
					return err
				})
			})
		},
	}
}

func newPostsPreviewCommand(opts *RootOptions) *cobra.Command {
	var asHTML, rawHTML bool
	var width int
	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Render a post body",
		Long:  "Render a post body for the terminal, or as HTML with --html.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				p, err := app.Posts.Find(ctx, id)
				if err != nil {
					return err
				}
				if asHTML {
					html, err := editor.Preview(p, rawHTML)
					if err != nil {
						return err
					}
					_, err = io.WriteString(out.Writer, html)
					return err
				}
				return renderTerminal(out.Writer, p, width)
			})
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "print HTML instead of terminal output")
	cmd.Flags().BoolVar(&rawHTML, "unsafe", false, "keep raw HTML from the body in --html output")
	cmd.Flags().IntVar(&width, "width", 80, "word wrap width for terminal output")
	return cmd
}

func renderTerminal(w io.Writer, p *models.Post, width int) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("terminal renderer: %w", err)
	}
	src := "# " + p.Title + "\n\n" + deref(p.Body)
	rendered, err := r.Render(src)
	if err != nil {
		return fmt.Errorf("render post: %w", err)
	}
	_, err = io.WriteString(w, rendered)
	return err
}

func printPosts(out *OutputFormatter, page *api.Page[models.Post]) error {
	wire := make([]codec.WirePost, len(page.Items))
	for i := range page.Items {
		wire[i] = *codec.EncodePost(&page.Items[i])
	}
	return out.Print(wire, func(io.Writer) error {
		rows := make([][]string, len(page.Items))
		for i, p := range page.Items {
			rows[i] = postRow(p)
		}
		if err := out.Table(postHeaders, rows); err != nil {
			return err
		}
		pageFooter(out, page)
		return nil
	})
}

func printPost(out *OutputFormatter, p *models.Post) error {
	return out.Print(codec.EncodePost(p), func(w io.Writer) error {
		row := postRow(*p)
		fields := [][2]string{
			{"id", row[0]},
			{"title", p.Title},
			{"slug", deref(p.Slug)},
			{"summary", deref(p.Summary)},
			{"tags", deref(p.Tags)},
			{"category", row[3]},
			{"published", row[4]},
		}
		for _, f := range fields {
			if f[1] == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "%-10s %s\n", f[0]+":", f[1]); err != nil {
				return err
			}
		}
		return nil
	})
}
