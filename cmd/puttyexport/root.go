package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/radawson/putty-export/pkg/export"
)

var (
	// Flags
	outputPath      string
	includeDefaults bool
	sshOnly         bool
	verbose         bool
	quiet           bool
)

var rootCmd = &cobra.Command{
	Use:   "puttyexport <sessions.reg>",
	Short: "Convert exported PuTTY sessions to OpenSSH client configuration",
	Long: `puttyexport reads a Windows registry export (.reg) of the PuTTY
Sessions key and emits the equivalent OpenSSH client configuration,
one Host stanza per saved session.

Export the sessions on the Windows side first:

  reg export HKCU\Software\SimonTatham\PuTTY\Sessions putty-sessions.reg

Then convert:

  puttyexport putty-sessions.reg -o ~/.ssh/putty_hosts

Private keys are not converted; run puttygen on any .ppk files the
generated IdentityFile lines point at.`,
	Version:       "0.1.0",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write config to this file instead of stdout")
	rootCmd.Flags().BoolVar(&includeDefaults, "include-default-settings", false, "Include the 'Default Settings' template session")
	rootCmd.Flags().BoolVar(&sshOnly, "ssh-only", false, "Only convert sessions with Protocol=ssh and a hostname")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func runExport(regPath string) error {
	logger := newLogger()
	defer logger.Sync()

	data, err := os.ReadFile(regPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", regPath, err)
	}

	res, err := export.ConvertBytes(data, export.Options{
		IncludeDefaultSettings: includeDefaults,
		SSHOnly:                sshOnly,
	})
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		logger.Warn("session converted with degradation",
			zap.String("session", w.Session),
			zap.String("reason", w.Message))
	}
	logger.Debug("conversion finished",
		zap.String("input", regPath),
		zap.Int("sessions", res.Sessions),
		zap.Int("warnings", len(res.Warnings)))

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(res.Config), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
		logger.Info("wrote OpenSSH config",
			zap.String("path", outputPath),
			zap.Int("sessions", res.Sessions))
		return nil
	}
	_, err = fmt.Fprint(os.Stdout, res.Config)
	return err
}

// newLogger builds a console logger on stderr so log lines never mix into
// config output on stdout.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	switch {
	case quiet:
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case verbose:
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
