package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conn-castle/nixos-needsreboot/internal/config"
	"github.com/conn-castle/nixos-needsreboot/internal/logging"
	"github.com/conn-castle/nixos-needsreboot/internal/messages"
	"github.com/conn-castle/nixos-needsreboot/internal/reboot"
)

var (
	getEUID = os.Geteuid
	getenv  = os.Getenv
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configPath string
	prefix     string
	verbose    bool
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}
	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	persistent.StringVar(&opts.prefix, "prefix", "", messages.RootFlagPrefix)
	persistent.BoolVarP(&opts.verbose, "verbose", "v", false, messages.RootFlagVerbose)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, messages.RootFlagDryRun)

	cmd.AddCommand(newVersionsCmd(opts), newDoctorCmd(opts))
	return cmd
}

// runCheck is the default action: decide and record whether a reboot is needed.
// A failed check is logged at error level and exits 1 without a second error line.
func runCheck(cmd *cobra.Command, opts *rootOptions) error {
	if !opts.dryRun && getEUID() != 0 {
		return errors.New(messages.RootRequiresRoot)
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := opts.logger(cmd.ErrOrStderr())
	if _, err := reboot.Check(reboot.Options{Config: cfg, DryRun: opts.dryRun}, logger, cmd.OutOrStdout()); err != nil {
		logger.Error(err.Error(),
			logging.F("booted_system", cfg.BootedSystem),
			logging.F("staged_system", cfg.StagedSystem),
		)
		return &SilentExitError{Code: 1}
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path, explicit, err := config.ConfigPath(o.configPath, getenv)
	if err != nil {
		return nil, err
	}
	var cfg *config.Config
	if explicit {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return nil, err
	}
	if o.prefix != "" {
		prefix, err := filepath.Abs(o.prefix)
		if err != nil {
			return nil, err
		}
		cfg.Prefix = prefix
	}
	return cfg, nil
}

func (o *rootOptions) logger(stderr io.Writer) *logging.Logger {
	return logging.New(stderr, logging.DetectOptions(stderr, o.verbose))
}
