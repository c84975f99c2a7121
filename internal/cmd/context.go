package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/philippart-s/ai-skills/internal/config"
	"github.com/philippart-s/ai-skills/internal/guide"
	"github.com/philippart-s/ai-skills/internal/log"
	"github.com/philippart-s/ai-skills/internal/ux"
	"github.com/philippart-s/ai-skills/internal/version"
)

// CommandContext holds the resolved configuration of one command run.
// Commands build it in RunE instead of reading global state.
type CommandContext struct {
	Config *config.Config
	Logger *log.Logger
	Out    io.Writer
	ErrOut io.Writer
}

// flagKeys maps persistent flags to config keys
var flagKeys = map[string]string{
	"output":     "output.format",
	"log-level":  "log.level",
	"log-format": "log.format",
	"style":      "output.style",
}

// NewCommandContext loads configuration with changed flags as the highest
// precedence layer, then sets up logging on stderr.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]any)
	for flag, key := range flagKeys {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		value, err := cmd.Flags().GetString(flag)
		if err != nil {
			return nil, err
		}
		overrides[key] = value
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		overrides["output.style"] = string(guide.StylePlain)
	}

	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}

	logCfg := log.FromSettings(cfg.Log.Level, cfg.Log.Format, version.Version)
	logCfg.Output = cmd.ErrOrStderr()
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	logger.Debug("configuration loaded", "command", cmd.CommandPath(), "output", cfg.Output.Format)

	return &CommandContext{
		Config: cfg,
		Logger: logger,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}, nil
}

// Print writes data in the configured output format
func (c *CommandContext) Print(data interface{}) error {
	f, err := ux.NewFormatter(c.Config.Output.Format, &ux.FormatterOptions{Writer: c.Out})
	if err != nil {
		return err
	}
	return f.Format(data)
}

// Text reports whether output is human-readable text
func (c *CommandContext) Text() bool {
	return c.Config.Output.Format == "text"
}

// Style returns the markdown style
func (c *CommandContext) Style() guide.Style {
	return guide.ParseStyle(c.Config.Output.Style)
}

// Guides returns a loader honouring guide.dir
func (c *CommandContext) Guides() *guide.Loader {
	return guide.NewLoader(c.Config.Guide.Dir)
}
