package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keepnotes/internal/notes/data"
	"keepnotes/internal/notes/query"
)

func parseColorFlag(s string) (data.Color, error) {
	c, ok := data.ParseColor(s)
	if !ok {
		return "", fmt.Errorf("unknown color %q (want default, yellow, blue or green)", s)
	}
	return c, nil
}

func newNewCmd(a *app) *cobra.Command {
	var (
		title, content, color string
		pin                   bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note",
		Example: `  keepnotes new --title "Grocery List" --content "milk, eggs"
  keepnotes new --content "call back" --color yellow --pin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
				return errors.New("a note needs a title or content")
			}
			c, err := parseColorFlag(color)
			if err != nil {
				return err
			}

			n := a.svc.CreateDraft()
			if err := a.svc.ApplyPartial(n.ID, data.Partial{Title: &title, Content: &content, Color: &c}); err != nil {
				return err
			}
			if pin {
				a.svc.TogglePin(n.ID)
			}
			if err := a.saveErr(); err != nil {
				return err
			}
			created, _ := a.svc.Get(n.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\nID: %s\n", data.DisplayTitle(created), n.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Note content")
	cmd.Flags().StringVar(&color, "color", "default", "Color: default, yellow, blue or green")
	cmd.Flags().BoolVarP(&pin, "pin", "p", false, "Pin the note")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		q      string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, pinned first and newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := query.DeriveView(a.svc.List(), q)
			out := cmd.OutOrStdout()

			if asJSON {
				payload := struct {
					Pinned []data.Note `json:"pinned"`
					Others []data.Note `json:"others"`
				}{Pinned: nonNil(view.Pinned), Others: nonNil(view.Others)}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			if view.Len() == 0 {
				if strings.TrimSpace(q) != "" {
					fmt.Fprintf(out, "No notes match %q.\n", strings.TrimSpace(q))
				} else {
					fmt.Fprintln(out, "No notes yet.")
				}
				return nil
			}

			if len(view.Pinned) > 0 {
				fmt.Fprintln(out, "Pinned")
				for _, n := range view.Pinned {
					printNoteLine(out, n)
				}
				if len(view.Others) > 0 {
					fmt.Fprintln(out, "\nOthers")
				}
			}
			for _, n := range view.Others {
				printNoteLine(out, n)
			}
			fmt.Fprintf(out, "\n%d note(s)\n", view.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&q, "query", "q", "", "Only notes whose title or content contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func nonNil(notes []data.Note) []data.Note {
	if notes == nil {
		return []data.Note{}
	}
	return notes
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.svc.Resolve(args[0])
			if err != nil {
				return err
			}
			printNote(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var title, content, color string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note's title, content or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.svc.Resolve(args[0])
			if err != nil {
				return err
			}

			var p data.Partial
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = &title
			}
			if flags.Changed("content") {
				p.Content = &content
			}
			if flags.Changed("color") {
				c, err := parseColorFlag(color)
				if err != nil {
					return err
				}
				p.Color = &c
			}
			if p.IsEmpty() {
				return errors.New("nothing to change: pass --title, --content or --color")
			}

			if err := a.svc.ApplyPartial(n.ID, p); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			// An edit that blanks the note ends like an abandoned draft.
			if a.svc.CleanupIfEmpty(n.ID) {
				fmt.Fprintf(out, "Removed empty note %s\n", shortID(n.ID))
				return a.saveErr()
			}
			if err := a.saveErr(); err != nil {
				return err
			}
			updated, _ := a.svc.Get(n.ID)
			fmt.Fprintf(out, "Updated: %s\n", data.DisplayTitle(updated))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content")
	cmd.Flags().StringVar(&color, "color", "", "New color: default, yellow, blue or green")
	return cmd
}

func newPinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin or unpin a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.svc.Resolve(args[0])
			if err != nil {
				return err
			}
			a.svc.TogglePin(n.ID)
			if err := a.saveErr(); err != nil {
				return err
			}
			if n.Pinned {
				fmt.Fprintf(cmd.OutOrStdout(), "Unpinned: %s\n", data.DisplayTitle(n))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Pinned: %s\n", data.DisplayTitle(n))
			}
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note permanently",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.svc.Resolve(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !yes {
				fmt.Fprintf(out, "%s\nDelete this note? This action cannot be undone. [y/N] ", data.DisplayTitle(n))
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			a.svc.Delete(n.ID)
			if err := a.saveErr(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted: %s\n", data.DisplayTitle(n))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every note to dir as a Markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := query.DeriveView(a.svc.List(), "").All()
			paths, err := data.ExportMarkdown(notes, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d note(s) to %s\n", len(paths), args[0])
			return nil
		},
	}
}
