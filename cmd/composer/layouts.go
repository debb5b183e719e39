package main

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-composer/internal/render"
	cmslayouts "github.com/goliatone/go-composer/layouts"
	"github.com/spf13/cobra"
)

var errStorageRequired = errors.New("layouts: --db is required")

type layoutSummary struct {
	PageKey   string `json:"page_key"`
	Revision  int    `json:"revision"`
	Sections  int    `json:"sections"`
	UpdatedAt string `json:"updated_at"`
}

// NewLayoutsCommand creates the layouts command.
func NewLayoutsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Inspect saved page layouts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List saved layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayoutsList(rootOpts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <page-key>",
		Short: "Render a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayoutShow(rootOpts, cmd, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <page-key>...",
		Short: "Delete saved layouts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayoutsRemove(rootOpts, cmd, args)
		},
	})
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runLayoutsList(opts *RootOptions, cmd *cobra.Command) error {
	if opts.DSN == "" {
		return errStorageRequired
	}
	module, err := opts.openModule(cmd)
	if err != nil {
		return err
	}
	defer module.Close()

	list, err := module.Layouts().List(commandContext(cmd))
	if err != nil {
		return err
	}
	summaries := make([]layoutSummary, 0, len(list))
	for _, layout := range list {
		summaries = append(summaries, summarize(layout))
	}

	out := newFormatter(opts, cmd.OutOrStdout())
	if out.JSON() {
		return out.Data(summaries)
	}
	for _, summary := range summaries {
		out.Linef("%s\trev %d\t%d section(s)\t%s", summary.PageKey, summary.Revision, summary.Sections, summary.UpdatedAt)
	}
	return nil
}

func runLayoutShow(opts *RootOptions, cmd *cobra.Command, pageKey string) error {
	if opts.DSN == "" {
		return errStorageRequired
	}
	module, err := opts.openModule(cmd)
	if err != nil {
		return err
	}
	defer module.Close()

	layout, err := module.Layouts().Get(commandContext(cmd), pageKey)
	if err != nil {
		return err
	}
	resolver := render.NewResolver(render.WithEscapeHTML(opts.EscapeHTML))
	sections := cmslayouts.ToSections(layout.Sections)

	out := newFormatter(opts, cmd.OutOrStdout())
	if out.JSON() {
		return out.Data(layout)
	}
	out.Linef("%s (revision %d)", layout.PageKey, layout.Revision)
	for _, section := range sections {
		out.Linef("%d\t%s\t%s", section.Order, section.Template.ID, resolver.Resolve(section))
	}
	return nil
}

func runLayoutsRemove(opts *RootOptions, cmd *cobra.Command, pageKeys []string) error {
	if opts.DSN == "" {
		return errStorageRequired
	}
	module, err := opts.openModule(cmd)
	if err != nil {
		return err
	}
	defer module.Close()

	out := newFormatter(opts, cmd.OutOrStdout())
	var failed error
	for _, key := range pageKeys {
		if err := module.Layouts().Delete(commandContext(cmd), key); err != nil {
			out.Linef("error removing %q: %v", key, err)
			failed = errors.Join(failed, err)
			continue
		}
		out.Linef("removed %q", key)
	}
	return failed
}

func summarize(layout *cmslayouts.Layout) layoutSummary {
	return layoutSummary{
		PageKey:   layout.PageKey,
		Revision:  layout.Revision,
		Sections:  len(layout.Sections),
		UpdatedAt: layout.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
