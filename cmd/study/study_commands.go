package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"study/internal/history"
	"study/internal/present"
	"study/internal/textutil"
)

const titlePreviewSize = 60

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	var out artifactOutput
	cmd := &cobra.Command{
		Use:   "summarize <file>",
		Short: "Upload a document and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := readLimited(path, maxUploadBytes)
			if err != nil {
				return err
			}
			token, err := ctx.token()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			name := filepath.Base(path)
			summary, err := client.Summarize(cmd.Context(), token, name, data)
			if err != nil {
				return err
			}
			ctx.record(cmd, history.KindSummary, name, path, summary)
			return out.emit(cmd, ctx, name+" summary", func(p *present.Printer) error {
				return p.Summary(summary)
			})
		},
	}
	out.register(cmd)
	return cmd
}

func newExplainCommand(ctx *commandContext) *cobra.Command {
	var out artifactOutput
	cmd := &cobra.Command{
		Use:   "explain <topic>",
		Short: "Explain a topic in sections",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := joinArgs(args)
			token, err := ctx.token()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			explanation, err := client.Explain(cmd.Context(), token, topic)
			if err != nil {
				return err
			}
			ctx.record(cmd, history.KindExplanation, topic, topic, explanation)
			return out.emit(cmd, ctx, topic, func(p *present.Printer) error {
				return p.Explanation(explanation)
			})
		},
	}
	out.register(cmd)
	return cmd
}

func newNotesCommand(ctx *commandContext) *cobra.Command {
	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "Generate notes or list saved notes",
	}
	notesCmd.AddCommand(newNotesMakeCommand(ctx))
	notesCmd.AddCommand(newNotesListCommand(ctx))
	return notesCmd
}

func newNotesMakeCommand(ctx *commandContext) *cobra.Command {
	var (
		src textSource
		out artifactOutput
	)
	cmd := &cobra.Command{
		Use:   "make [text]",
		Short: "Generate study notes from text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := sourceText(cmd, &src, args)
			if err != nil {
				return err
			}
			token, err := ctx.token()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			notes, err := client.MakeNotes(cmd.Context(), token, text)
			if err != nil {
				return err
			}
			title := artifactTitle(text)
			ctx.record(cmd, history.KindNotes, title, text, notes)
			return out.emit(cmd, ctx, title+" notes", func(p *present.Printer) error {
				return p.Notes(notes)
			})
		},
	}
	src.register(cmd, "source")
	out.register(cmd)
	return cmd
}

func newNotesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes saved on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := ctx.requireToken()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			entries, err := client.ListNotes(cmd.Context(), token)
			if err != nil {
				return err
			}
			printer, err := ctx.printer(cmd)
			if err != nil {
				return err
			}
			return printer.NoteList(entries)
		},
	}
}

func newMCQCommand(ctx *commandContext) *cobra.Command {
	var (
		src   textSource
		out   artifactOutput
		count int
	)
	cmd := &cobra.Command{
		Use:   "mcq [text]",
		Short: "Generate a multiple-choice quiz from text",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--count must be positive")
			}
			text, err := sourceText(cmd, &src, args)
			if err != nil {
				return err
			}
			token, err := ctx.token()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			quiz, err := client.MakeMCQ(cmd.Context(), token, text, count)
			if err != nil {
				return err
			}
			title := artifactTitle(text)
			ctx.record(cmd, history.KindQuiz, title, text, quiz)
			return out.emit(cmd, ctx, title+" quiz", func(p *present.Printer) error {
				return p.Quiz(quiz)
			})
		},
	}
	src.register(cmd, "source")
	out.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of questions (backend default when 0)")
	return cmd
}

func newAskCommand(ctx *commandContext) *cobra.Command {
	var (
		src textSource
		out artifactOutput
	)
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question, optionally about some text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := joinArgs(args)
			text, err := src.read(cmd)
			if err != nil {
				return err
			}
			token, err := ctx.token()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			answer, err := client.Ask(cmd.Context(), token, question, text)
			if err != nil {
				return err
			}
			ctx.record(cmd, history.KindAnswer, question, text, answer)
			return out.emit(cmd, ctx, artifactTitle(question), func(p *present.Printer) error {
				return p.Answer(answer)
			})
		},
	}
	src.register(cmd, "context")
	out.register(cmd)
	return cmd
}

// sourceText takes positional text, falling back to --text or --file.
func sourceText(cmd *cobra.Command, src *textSource, args []string) (string, error) {
	if len(args) > 0 {
		if src.text != "" || src.file != "" {
			return "", fmt.Errorf("pass text as an argument or with --text/--file, not both")
		}
		return joinArgs(args), nil
	}
	return src.read(cmd)
}

func artifactTitle(text string) string {
	return textutil.Preview(textutil.OneLine(text), titlePreviewSize)
}
