package main

import (
	"strings"

	"github.com/goliatone/go-composer/internal/render"
	"github.com/goliatone/go-composer/internal/templates"
	"github.com/spf13/cobra"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	Query    string
	Category string
}

type templateView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Keys        []string `json:"keys,omitempty"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Search the section template catalog",
		Long: `List catalog templates filtered by a case-insensitive query over name and
description and by category ("all" matches every category).

Examples:
  composer catalog --catalog ./templates
  composer catalog --catalog ./templates --query hero --category headers
  composer catalog categories --catalog ./catalog.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "search text")
	cmd.Flags().StringVar(&opts.Category, "category", templates.AllCategories, "category filter")

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(opts, cmd)
		},
	})
	return cmd
}

func runCatalog(opts *CatalogOptions, cmd *cobra.Command) error {
	module, err := opts.openModule(cmd)
	if err != nil {
		return err
	}
	defer module.Close()

	category := strings.TrimSpace(opts.Category)
	if category == "" {
		category = templates.AllCategories
	}
	found := module.SearchTemplates(opts.Query, category)

	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())
	views := make([]templateView, 0, len(found))
	for _, tpl := range found {
		views = append(views, templateView{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Category:    tpl.Category,
			Description: tpl.Description,
			Keys:        render.Parse(tpl.Markup).Keys(),
		})
	}
	if out.JSON() {
		return out.Data(views)
	}
	for _, view := range views {
		out.Linef("%s\t%s\t%s\t%s", view.ID, view.Category, view.Name, view.Description)
	}
	out.Linef("%d template(s)", len(views))
	return nil
}

func runCategories(opts *CatalogOptions, cmd *cobra.Command) error {
	module, err := opts.openModule(cmd)
	if err != nil {
		return err
	}
	defer module.Close()

	categories := module.Catalog().Categories()
	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())
	if out.JSON() {
		return out.Data(categories)
	}
	for _, category := range categories {
		out.Linef("%s", category)
	}
	return nil
}
