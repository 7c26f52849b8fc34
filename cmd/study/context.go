package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"study/internal/api"
	"study/internal/config"
	"study/internal/history"
	"study/internal/logging"
	"study/internal/present"
	"study/internal/session"
	"study/internal/transport"
)

const envToken = "STUDY_TOKEN"

var errNotLoggedIn = errors.New("not logged in; run `study login` first")

type globalFlags struct {
	config  string
	output  string
	token   string
	verbose bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor builds the invocation logger once. Logger construction failures
// fall back to stderr-only logging so a read-only state dir does not block
// commands.
func (c *commandContext) loggerFor(cmd *cobra.Command) *slog.Logger {
	c.loggerOnce.Do(func() {
		stderr := cmd.ErrOrStderr()
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg, stderr, c.flags.verbose)
		if err != nil {
			fmt.Fprintf(stderr, "logging disabled: %v\n", err)
			logger = logging.NewNop()
		}
		c.logger = logger.With(logging.String("command", cmd.CommandPath()))
	})
	return c.logger
}

func (c *commandContext) apiClient(cmd *cobra.Command) (*api.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.loggerFor(cmd)
	sender := transport.NewClient(transport.Config{
		BaseURL:        cfg.API.BaseURL,
		TimeoutSeconds: cfg.API.TimeoutSeconds,
		UserAgent:      cfg.API.UserAgent,
	}, transport.WithLogger(logger))
	return api.NewClient(sender, logger), nil
}

func (c *commandContext) sessionStore() (*session.FileStore, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(cfg.SessionPath()), nil
}

// token resolves the bearer token: --token, then STUDY_TOKEN, then the stored
// session. An empty result is not an error; the backend decides.
func (c *commandContext) token() (string, error) {
	if t := strings.TrimSpace(c.flags.token); t != "" {
		return t, nil
	}
	if t := strings.TrimSpace(os.Getenv(envToken)); t != "" {
		return t, nil
	}
	store, err := c.sessionStore()
	if err != nil {
		return "", err
	}
	sess, err := store.Load()
	if errors.Is(err, session.ErrNotLoggedIn) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func (c *commandContext) requireToken() (string, error) {
	token, err := c.token()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", errNotLoggedIn
	}
	return token, nil
}

func (c *commandContext) printer(cmd *cobra.Command) (*present.Printer, error) {
	return c.printerTo(cmd.OutOrStdout(), "")
}

// printerTo builds a printer for out. A non-empty color overrides the
// configured mode.
func (c *commandContext) printerTo(out io.Writer, color string) (*present.Printer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	name := cfg.Output.Format
	if strings.TrimSpace(c.flags.output) != "" {
		name = c.flags.output
	}
	format, err := present.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	if color == "" {
		color = cfg.Output.Color
	}
	return present.New(out, present.Options{
		Format:      format,
		Color:       color,
		PreviewSize: cfg.Output.NotesPreviewSize,
	}), nil
}

func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// record stores a generated artifact when history is enabled. Failures are
// logged, not returned: the artifact was already delivered.
func (c *commandContext) record(cmd *cobra.Command, kind history.Kind, title, input string, payload any) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return
	}
	logger := c.loggerFor(cmd)
	if !cfg.History.Enabled {
		logger.Debug("artifact not recorded",
			logging.String(logging.FieldArtifact, string(kind)),
			logging.Bool("history_enabled", false),
		)
		return
	}
	err = c.withHistory(func(store *history.Store) error {
		entry, err := store.Add(cmd.Context(), kind, title, input, payload)
		if err != nil {
			return err
		}
		logger.Debug("artifact recorded",
			logging.String(logging.FieldArtifact, string(kind)),
			logging.String("id", entry.ID),
		)
		return nil
	})
	if err != nil {
		logger.Warn("history record failed",
			logging.String(logging.FieldArtifact, string(kind)),
			logging.Error(err),
		)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
