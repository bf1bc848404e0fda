// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"blogdesk/internal/api"
	"blogdesk/internal/models"
	"blogdesk/internal/slug"
)

var categoryHeaders = []string{"ID", "NAME", "SLUG", "DESCRIPTION"}

func newCategoriesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(
		newCategoriesListCommand(opts, false),
		newCategoriesListCommand(opts, true),
		newCategoriesGetCommand(opts),
		newCategoriesCreateCommand(opts),
		newCategoriesDeleteCommand(opts),
	)
	return cmd
}

func newCategoriesListCommand(opts *RootOptions, search bool) *cobra.Command {
	var lf listFlags
	use, short, args := "list", "List categories", cobra.NoArgs
	if search {
		use, short, args = "search <query>", "Full-text search over categories", cobra.MinimumNArgs(1)
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ro, err := lf.options(cmd)
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				var page *api.Page[models.Category]
				if search {
					ro.Query = strings.Join(args, " ")
					page, err = app.Categories.Search(ctx, ro)
				} else {
					page, err = app.Categories.List(ctx, ro)
				}
				if err != nil {
					return err
				}
				return out.Print(page.Items, func(io.Writer) error {
					rows := make([][]string, len(page.Items))
					for i, c := range page.Items {
						rows[i] = categoryRow(c)
					}
					if err := out.Table(categoryHeaders, rows); err != nil {
						return err
					}
					pageFooter(out, page)
					return nil
				})
			})
		},
	}
	lf.register(cmd, true)
	return cmd
}

func newCategoriesGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				c, err := app.Categories.Find(ctx, id)
				if err != nil {
					return err
				}
				return printCategory(out, c)
			})
		},
	}
}

func newCategoriesCreateCommand(opts *RootOptions) *cobra.Command {
	var name, slugFlag, description, image string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			c := &models.Category{Name: models.Ptr(strings.TrimSpace(name))}
			if slugFlag == "" {
				slugFlag = slug.Generate(name)
			}
			if slugFlag != "" {
				c.Slug = models.Ptr(slugFlag)
			}
			if description != "" {
				c.Description = models.Ptr(description)
			}
			if image != "" {
				data, contentType, err := readImage(image)
				if err != nil {
					return err
				}
				c.Image = data
				c.ImageContentType = models.Ptr(contentType)
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				saved, err := app.Categories.Create(ctx, c)
				if err != nil {
					return err
				}
				return printCategory(out, saved)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&slugFlag, "slug", "", "URL slug (derived from the name when empty)")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&image, "image", "", "path to an image file")
	return cmd
}

// readImage loads an image and guesses its content type from the extension,
// falling back to sniffing the bytes.
func readImage(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

func newCategoriesDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				if err := app.Categories.Remove(ctx, id); err != nil {
					return err
				}
				return out.Print(map[string]int64{"deleted": id}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "deleted category %d\n", id)
					return err
				})
			})
		},
	}
}

func printCategory(out *OutputFormatter, c *models.Category) error {
	return out.Print(c, func(w io.Writer) error {
		row := categoryRow(*c)
		_, err := fmt.Fprintf(w, "%-12s %s\n%-12s %s\n%-12s %s\n", "id:", row[0], "name:", row[1], "slug:", row[2])
		if err != nil || c.Description == nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%-12s %s\n", "description:", *c.Description)
		return err
	})
}
