// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"blogdesk/internal/codec"
	"blogdesk/internal/models"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// OutputFormatter writes command results as JSON or as text.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Print writes v as indented JSON, or calls text in text mode.
func (f *OutputFormatter) Print(v any, text func(w io.Writer) error) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(f.Writer)
}

// Table renders rows under headers with a rounded border.
func (f *OutputFormatter) Table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(f.Writer, t.Render())
	return err
}

// Muted writes a dimmed line, used for pagination hints.
func (f *OutputFormatter) Muted(format string, args ...any) {
	fmt.Fprintln(f.Writer, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

func postRow(p models.Post) []string {
	category := ""
	if p.Category != nil && p.Category.Name != nil {
		category = *p.Category.Name
	}
	published := ""
	if p.PublishedDate != nil {
		published = p.PublishedDate.String()
		if p.PublishedDate.IsValid() {
			published = p.PublishedDate.Time().Format(codec.DateFormat)
		}
	}
	return []string{idString(p.ID), p.Title, deref(p.Slug), category, published}
}

func categoryRow(c models.Category) []string {
	return []string{idString(c.ID), deref(c.Name), deref(c.Slug), deref(c.Description)}
}

func idString(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
