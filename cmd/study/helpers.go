package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"study/internal/fileutil"
	"study/internal/present"
	"study/internal/textutil"
)

const (
	maxUploadBytes = 25 << 20
	maxTextBytes   = 2 << 20
)

// textSource gathers free text from --text, --file or stdin ("-").
type textSource struct {
	text string
	file string
}

func (s *textSource) register(cmd *cobra.Command, what string) {
	cmd.Flags().StringVar(&s.text, "text", "", what+" text")
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "Read "+what+" text from a file (- for stdin)")
}

func (s *textSource) read(cmd *cobra.Command) (string, error) {
	if s.text != "" && s.file != "" {
		return "", errors.New("use either --text or --file, not both")
	}
	if s.file == "" {
		return s.text, nil
	}
	if s.file == "-" {
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxTextBytes+1))
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		if len(data) > maxTextBytes {
			return "", fmt.Errorf("stdin exceeds %s", humanize.IBytes(maxTextBytes))
		}
		return string(data), nil
	}
	data, err := readLimited(s.file, maxTextBytes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readLimited(path string, limit int64) ([]byte, error) {
	data, err := fileutil.ReadFileLimit(path, limit)
	if errors.Is(err, fileutil.ErrTooLarge) {
		return nil, fmt.Errorf("%s exceeds %s", path, humanize.IBytes(uint64(limit)))
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// readSecret returns value, or the first line of stdin when fromStdin is set.
func readSecret(cmd *cobra.Command, value string, fromStdin bool) (string, error) {
	if !fromStdin {
		return value, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// artifactOutput prints an artifact and optionally saves a copy.
type artifactOutput struct {
	save string
}

func (o *artifactOutput) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.save, "save", "", "Also write the result to this file or directory")
}

func (o *artifactOutput) emit(cmd *cobra.Command, ctx *commandContext, name string, render func(*present.Printer) error) error {
	printer, err := ctx.printer(cmd)
	if err != nil {
		return err
	}
	if err := render(printer); err != nil {
		return err
	}
	if strings.TrimSpace(o.save) == "" {
		return nil
	}

	var buf bytes.Buffer
	filePrinter, err := ctx.printerTo(&buf, "never")
	if err != nil {
		return err
	}
	if err := render(filePrinter); err != nil {
		return err
	}
	target, err := savePath(o.save, name, filePrinter.Format())
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved to %s\n", target)
	return nil
}

// savePath resolves --save. A directory receives a file named after the
// artifact.
func savePath(target, name string, format present.Format) (string, error) {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		ext := ".txt"
		switch format {
		case present.FormatJSON:
			ext = ".json"
		case present.FormatYAML:
			ext = ".yaml"
		}
		return filepath.Join(target, textutil.SanitizeFileName(name, "study")+ext), nil
	} else if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("check save path: %w", err)
	}
	return target, nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
