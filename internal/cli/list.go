// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"blogdesk/internal/api"
)

// listFlags are shared by list, search and count commands.
type listFlags struct {
	page    int
	size    int
	sort    []string
	filters []string
}

func (f *listFlags) register(cmd *cobra.Command, paging bool) {
	if paging {
		cmd.Flags().IntVar(&f.page, "page", 0, "page number, starting at 0")
		cmd.Flags().IntVar(&f.size, "size", 20, "page size")
		cmd.Flags().StringSliceVar(&f.sort, "sort", nil, `sort order, e.g. "id,desc"`)
	}
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, `filter as field.op=value, e.g. "title.contains=go"`)
}

func (f *listFlags) options(cmd *cobra.Command) (api.RequestOptions, error) {
	var opts api.RequestOptions
	if cmd.Flags().Lookup("page") != nil {
		opts = api.Paged(f.page, f.size, f.sort...)
	}
	for _, expr := range f.filters {
		field, op, value, ok := api.ParseFilter(expr)
		if !ok {
			return opts, fmt.Errorf("invalid filter %q: want field.op=value", expr)
		}
		opts.Filters = opts.Filters.Where(field, op, value)
	}
	return opts, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func pageFooter[T any](out *OutputFormatter, page *api.Page[T]) {
	if page.TotalCount < 0 {
		return
	}
	msg := fmt.Sprintf("%d of %d", len(page.Items), page.TotalCount)
	if next, ok := page.Links["next"]; ok {
		msg += fmt.Sprintf(", next page: --page %d", next)
	}
	out.Muted("%s", msg)
}
