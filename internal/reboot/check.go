// Package reboot decides whether the machine has to reboot into the staged
// NixOS generation and records the answer in a sentinel file.
package reboot

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/nixos-needsreboot/internal/config"
	"github.com/conn-castle/nixos-needsreboot/internal/logging"
	"github.com/conn-castle/nixos-needsreboot/internal/messages"
	"github.com/conn-castle/nixos-needsreboot/internal/modules"
)

var (
	osStat              = os.Stat
	osReadFile          = os.ReadFile
	upgradesAvailableFn = modules.UpgradesAvailable
)

// Outcome says which branch of the check was taken.
type Outcome int

const (
	// OutcomeSentinelPresent means a reboot was already flagged; nothing was compared.
	OutcomeSentinelPresent Outcome = iota
	// OutcomeLatestGeneration means the booted and staged generations are the same.
	OutcomeLatestGeneration
	// OutcomeNoUpdates means the generations differ but no tracked component is newer.
	OutcomeNoUpdates
	// OutcomeRebootNeeded means a tracked component in the staged generation is newer.
	OutcomeRebootNeeded
)

// Options configures a single check.
type Options struct {
	Config *config.Config
	// DryRun prints the reboot reason to stdout instead of writing the sentinel.
	DryRun bool
}

// Result describes what a check found.
type Result struct {
	Outcome  Outcome
	BootedID string
	StagedID string
	// Reason is the sentinel content when a reboot is needed.
	Reason string
	// Wrote is true when the sentinel file was written.
	Wrote bool
}

// Check compares the booted and staged generations. stdout receives the
// existing sentinel content, or the reason in dry-run mode.
func Check(opts Options, logger *logging.Logger, stdout io.Writer) (Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if stdout == nil {
		stdout = io.Discard
	}

	sys := modules.RealSystem{Prefix: cfg.Prefix}
	if err := statStaged(sys, cfg.StagedSystem); err != nil {
		return Result{}, err
	}

	bootedID, err := readSystemID(sys, cfg.BootedSystem)
	if err != nil {
		return Result{}, err
	}
	stagedID, err := readSystemID(sys, cfg.StagedSystem)
	if err != nil {
		return Result{}, err
	}
	result := Result{BootedID: bootedID, StagedID: stagedID}

	existing, err := readSentinel(cfg.Sentinel)
	if err != nil {
		return Result{}, err
	}
	if existing != nil {
		logger.Debug(fmt.Sprintf(messages.RebootSentinelExistsFmt, cfg.Sentinel))
		_, _ = stdout.Write(existing)
		result.Outcome = OutcomeSentinelPresent
		return result, nil
	}

	if bootedID == stagedID {
		logger.Debug(messages.RebootLatestGeneration, logging.F("generation", strings.TrimSpace(stagedID)))
		result.Outcome = OutcomeLatestGeneration
		return result, nil
	}

	needed, err := upgradesAvailableFn(sys, cfg.BootedSystem, cfg.StagedSystem)
	if err != nil {
		return Result{}, fmt.Errorf(messages.RebootCompareModulesFmt, err)
	}
	if !needed {
		logger.Debug(messages.RebootNoUpdates)
		result.Outcome = OutcomeNoUpdates
		return result, nil
	}

	result.Outcome = OutcomeRebootNeeded
	result.Reason = fmt.Sprintf(messages.RebootReasonFmt, strings.TrimSpace(stagedID))
	logger.Info(fmt.Sprintf(messages.RebootNeededFmt, strings.TrimSpace(stagedID), strings.TrimSpace(bootedID)),
		logging.F("booted_system", cfg.BootedSystem),
		logging.F("staged_system", cfg.StagedSystem),
	)
	if opts.DryRun {
		_, _ = io.WriteString(stdout, result.Reason)
		return result, nil
	}
	if err := writeSentinel(cfg.Sentinel, result.Reason); err != nil {
		return Result{}, &IOError{Path: cfg.Sentinel, Err: err, format: messages.RebootWriteSentinelFmt}
	}
	result.Wrote = true
	logger.Debug(fmt.Sprintf(messages.RebootSentinelWrittenFmt, cfg.Sentinel))
	return result, nil
}

// statStaged maps a missing staged system to ErrNotNixOS.
func statStaged(sys modules.RealSystem, staged string) error {
	path, err := sys.HostPath(staged)
	if err != nil {
		return &IOError{Path: staged, Err: err, format: messages.RebootStatPathFmt}
	}
	if _, err := osStat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotNixOS
		}
		return &IOError{Path: staged, Err: err, format: messages.RebootStatPathFmt}
	}
	return nil
}

// readSystemID returns the raw content of <root>/nixos-version.
func readSystemID(sys modules.RealSystem, root string) (string, error) {
	path := filepath.Join(root, config.SystemIDFile)
	hostPath, err := sys.HostPath(path)
	if err != nil {
		return "", &IOError{Path: path, Err: err, format: messages.RebootReadSystemIDFmt}
	}
	data, err := osReadFile(hostPath)
	if err != nil {
		return "", &IOError{Path: path, Err: err, format: messages.RebootReadSystemIDFmt}
	}
	return string(data), nil
}

// readSentinel returns the sentinel content, or nil when it does not exist.
func readSentinel(path string) ([]byte, error) {
	data, err := osReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &IOError{Path: path, Err: err, format: messages.RebootReadSentinelFmt}
	}
	return data, nil
}
