package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-composer"
	sessioncmd "github.com/goliatone/go-composer/internal/commands/session"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Script is a recorded editing session replayed against one page.
type Script struct {
	Page  string       `yaml:"page"`
	Load  bool         `yaml:"load"`
	Save  bool         `yaml:"save"`
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptStep is one UI event. Sections are addressed by their index in the
// page at the time the step runs.
type ScriptStep struct {
	Op       string            `yaml:"op"`
	Template string            `yaml:"template,omitempty"`
	Section  *int              `yaml:"section,omitempty"`
	Target   int               `yaml:"target,omitempty"`
	Order    []int             `yaml:"order,omitempty"`
	Content  map[string]string `yaml:"content,omitempty"`
}

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Page string
}

type sectionView struct {
	ID         string            `json:"id"`
	Order      int               `json:"order"`
	TemplateID string            `json:"template_id"`
	Content    map[string]string `json:"content,omitempty"`
	Markup     string            `json:"markup"`
	Unresolved []string          `json:"unresolved,omitempty"`
}

type runResult struct {
	Page     string        `json:"page"`
	Sections []sectionView `json:"sections"`
	Selected string        `json:"selected,omitempty"`
	CanUndo  bool          `json:"can_undo"`
	CanRedo  bool          `json:"can_redo"`
	Dirty    bool          `json:"dirty"`
	History  int           `json:"history"`
	Cursor   int           `json:"cursor"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Replay an editing script against a page",
		Long: `Replay a YAML editing script through the session command handlers and
print the resolved page.

Supported ops: add, delete, duplicate, reorder, drag, update, undo, redo,
select, save.

Example script:
  page: home
  steps:
    - op: add
      template: hero
    - op: update
      section: 0
      content: {title: Hello}
    - op: undo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(opts, cmd, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Page, "page", "", "page key, overrides the script page")
	return cmd
}

// LoadScript reads a script file.
func LoadScript(path string) (Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	var script Script
	if err := yaml.Unmarshal(raw, &script); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	return script, nil
}

func runScript(opts *RunOptions, cmd *cobra.Command, path string) error {
	script, err := LoadScript(path)
	if err != nil {
		return err
	}
	if opts.Page != "" {
		script.Page = opts.Page
	}
	if strings.TrimSpace(script.Page) == "" {
		return fmt.Errorf("script page is required")
	}

	module, err := opts.openModule(cmd)
	if err != nil {
		return err
	}
	defer module.Close()

	ctx := logging.ContextWithFields(commandContext(cmd), map[string]any{
		"script": filepath.Base(path),
	})

	var s *composer.Session
	if script.Load {
		s, err = module.LoadSession(ctx, script.Page)
	} else {
		s, err = module.OpenSession(script.Page)
	}
	if err != nil {
		return err
	}

	unsubscribe := module.Commands().Subscribe()
	defer unsubscribe()

	for i, step := range script.Steps {
		if err := dispatchStep(ctx, s, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	if script.Save {
		if err := dispatcher.Dispatch(ctx, sessioncmd.SaveLayoutCommand{PageKey: s.PageKey()}); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}

	return writeResult(newFormatter(opts.RootOptions, cmd.OutOrStdout()), s)
}

func dispatchStep(ctx context.Context, s *composer.Session, step ScriptStep) error {
	page := s.PageKey()
	switch strings.ToLower(strings.TrimSpace(step.Op)) {
	case "add":
		return dispatcher.Dispatch(ctx, sessioncmd.AddSectionCommand{PageKey: page, TemplateID: step.Template})
	case "delete":
		id, err := sectionAt(s, step.Section)
		if err != nil {
			return err
		}
		return dispatcher.Dispatch(ctx, sessioncmd.DeleteSectionCommand{PageKey: page, SectionID: id})
	case "duplicate":
		id, err := sectionAt(s, step.Section)
		if err != nil {
			return err
		}
		return dispatcher.Dispatch(ctx, sessioncmd.DuplicateSectionCommand{PageKey: page, SectionID: id})
	case "reorder":
		ids := make([]uuid.UUID, 0, len(step.Order))
		for _, index := range step.Order {
			id, err := sectionAt(s, &index)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return dispatcher.Dispatch(ctx, sessioncmd.ReorderSectionsCommand{PageKey: page, SectionIDs: ids})
	case "drag":
		id, err := sectionAt(s, step.Section)
		if err != nil {
			return err
		}
		return dispatcher.Dispatch(ctx, sessioncmd.DragEndCommand{PageKey: page, SectionID: id, TargetIndex: step.Target})
	case "update":
		id, err := sectionAt(s, step.Section)
		if err != nil {
			return err
		}
		return dispatcher.Dispatch(ctx, sessioncmd.UpdateContentCommand{PageKey: page, SectionID: id, Content: step.Content})
	case "undo":
		return dispatcher.Dispatch(ctx, sessioncmd.UndoCommand{PageKey: page})
	case "redo":
		return dispatcher.Dispatch(ctx, sessioncmd.RedoCommand{PageKey: page})
	case "select":
		msg := sessioncmd.SelectSectionCommand{PageKey: page}
		if step.Section != nil {
			id, err := sectionAt(s, step.Section)
			if err != nil {
				return err
			}
			msg.SectionID = &id
		}
		return dispatcher.Dispatch(ctx, msg)
	case "save":
		return dispatcher.Dispatch(ctx, sessioncmd.SaveLayoutCommand{PageKey: page})
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

func sectionAt(s *composer.Session, index *int) (uuid.UUID, error) {
	if index == nil {
		return uuid.Nil, fmt.Errorf("section index is required")
	}
	list := s.Sections()
	if *index < 0 || *index >= len(list) {
		return uuid.Nil, fmt.Errorf("section index %d out of range (page has %d)", *index, len(list))
	}
	return list[*index].ID, nil
}

func writeResult(out *OutputFormatter, s *composer.Session) error {
	state := s.State()
	result := runResult{
		Page:     s.PageKey(),
		Sections: make([]sectionView, 0, len(state.Sections)),
		CanUndo:  state.CanUndo,
		CanRedo:  state.CanRedo,
		Dirty:    state.Dirty,
		History:  s.HistoryLen(),
		Cursor:   s.HistoryCursor(),
	}
	if state.Selected != nil {
		result.Selected = state.Selected.String()
	}
	for i, section := range state.Sections {
		result.Sections = append(result.Sections, sectionView{
			ID:         section.ID.String(),
			Order:      section.Order,
			TemplateID: section.Template.ID,
			Content:    section.Content,
			Markup:     state.Resolved[i].Markup,
			Unresolved: s.Unresolved(section.ID),
		})
	}

	if out.JSON() {
		return out.Data(result)
	}
	for _, section := range result.Sections {
		out.Linef("%d\t%s\t%s", section.Order, section.TemplateID, section.Markup)
	}
	out.Linef("sections=%d history=%d/%d undo=%t redo=%t dirty=%t",
		len(result.Sections), result.Cursor+1, result.History, result.CanUndo, result.CanRedo, result.Dirty)
	return nil
}
