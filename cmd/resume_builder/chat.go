package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/resumefile"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// Chat commands
const (
	cmdQuit    = "/quit"
	cmdPreview = "/preview"
	cmdSave    = "/save"
	cmdHelp    = "/help"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Edit the resume by talking to the assistant",
	Long: `Start an interactive conversation with the resume assistant. Each reply may update the
document; the applied change and the new revision are printed after the reply.

Commands: /preview shows the current render, /save [path] writes the document, /quit exits.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	a, err := newApplication(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	out := observability.NewPrinter(cmd.OutOrStdout())
	for _, msg := range a.session.History() {
		out.PrintMessage(msg)
	}

	prompt := promptui.Prompt{
		Label: "You",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("message cannot be empty")
			}
			return nil
		},
	}

	for {
		input, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("prompt failed: %w", err)
		}

		quit, err := handleChatLine(cmd, a, out, strings.TrimSpace(input))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// handleChatLine runs one slash command or sends one message to the assistant
func handleChatLine(cmd *cobra.Command, a *application, out *observability.Printer, line string) (bool, error) {
	w := cmd.OutOrStdout()
	fields := strings.Fields(line)

	switch fields[0] {
	case cmdQuit:
		return true, nil
	case cmdHelp:
		fmt.Fprintln(w, "Commands: /preview, /save [path], /quit")
		return false, nil
	case cmdPreview:
		tree, _ := a.session.Tree("")
		out.PrintTree(tree)
		return false, nil
	case cmdSave:
		path := a.cfg.Document.Path
		if len(fields) > 1 {
			path = fields[1]
		}
		if path == "" {
			fmt.Fprintln(w, "Usage: /save <path>")
			return false, nil
		}
		snap := a.session.Snapshot()
		if err := resumefile.Save(path, snap.Document); err != nil {
			fmt.Fprintf(w, "Save failed: %v\n", err)
			return false, nil
		}
		fmt.Fprintf(w, "Saved revision %d to %s\n", snap.Revision, path)
		return false, nil
	}

	result, err := a.session.Chat(cmd.Context(), line)
	if err != nil {
		if errors.Is(err, session.ErrClosed) {
			return true, nil
		}
		return false, err
	}

	out.PrintMessage(result.Reply)
	if result.Invocation != nil {
		out.PrintInvocation(result.Invocation, result.Applied)
	}
	if result.Applied {
		fmt.Fprintf(w, "Document is now at revision %d\n", result.Revision)
	}
	return false, nil
}
