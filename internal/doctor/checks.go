// Package doctor runs read-only checks that explain why a reboot check would
// fail on this machine.
package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/nixos-needsreboot/internal/config"
	"github.com/conn-castle/nixos-needsreboot/internal/messages"
	"github.com/conn-castle/nixos-needsreboot/internal/modules"
)

var (
	osStat     = os.Stat
	osReadFile = os.ReadFile
)

// CheckPrivileges reports whether the sentinel can be written as euid.
func CheckPrivileges(euid int) Result {
	if euid == 0 {
		return Result{Status: StatusOK, CheckName: messages.DoctorCheckNamePrivileges, Message: messages.DoctorRunningAsRoot}
	}
	return Result{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNamePrivileges,
		Message:        fmt.Sprintf(messages.DoctorNotRootFmt, euid),
		Recommendation: messages.DoctorNotRootRecommend,
	}
}

// CheckSystems verifies both system roots exist and carry a generation id.
func CheckSystems(cfg *config.Config) []Result {
	sys := modules.RealSystem{Prefix: cfg.Prefix}
	roots := []struct {
		label string
		path  string
	}{
		{messages.DoctorLabelBooted, cfg.BootedSystem},
		{messages.DoctorLabelStaged, cfg.StagedSystem},
	}
	results := make([]Result, 0, len(roots))
	for _, root := range roots {
		rootPath, err := sys.HostPath(root.path)
		if err == nil {
			_, err = osStat(rootPath)
		}
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameSystems,
				Message:        fmt.Sprintf(messages.DoctorSystemMissingFmt, root.label, root.path),
				Recommendation: messages.DoctorSystemMissingRecommend,
			})
			continue
		}
		data, err := readSystemID(sys, root.path)
		if err != nil {
			results = append(results, Result{
				Status:    StatusFail,
				CheckName: messages.DoctorCheckNameSystems,
				Message:   fmt.Sprintf(messages.DoctorSystemIDUnreadableFmt, root.label, root.path, config.SystemIDFile, err),
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameSystems,
			Message:   fmt.Sprintf(messages.DoctorSystemIDFmt, root.label, root.path, strings.TrimSpace(string(data))),
		})
	}
	return results
}

// CheckComponents extracts every tracked component's version from both roots.
// Unlike the reboot check it keeps going after a failure so every broken
// component shows up in one report.
func CheckComponents(cfg *config.Config) []Result {
	sys := modules.RealSystem{Prefix: cfg.Prefix}
	var results []Result
	for _, component := range modules.Components() {
		oldVersion, newVersion, err := component.Versions(sys, cfg.BootedSystem, cfg.StagedSystem)
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameComponents,
				Message:        fmt.Sprintf(messages.DoctorComponentFailedFmt, component, err),
				Recommendation: messages.DoctorComponentFailedRecommend,
			})
			continue
		}
		format := messages.DoctorComponentVersionsFmt
		if modules.Newer(oldVersion, newVersion) {
			format = messages.DoctorComponentNewerFmt
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameComponents,
			Message:   fmt.Sprintf(format, component, oldVersion, newVersion),
		})
	}
	return results
}

// CheckSentinel verifies the sentinel's directory exists and reports whether a
// reboot is already pending.
func CheckSentinel(cfg *config.Config) Result {
	dirInfo, err := osStat(filepath.Dir(cfg.Sentinel))
	if err != nil || !dirInfo.IsDir() {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameSentinel,
			Message:        fmt.Sprintf(messages.DoctorSentinelDirMissingFmt, cfg.Sentinel),
			Recommendation: messages.DoctorSentinelDirRecommend,
		}
	}
	if _, err := osStat(cfg.Sentinel); err == nil {
		return Result{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameSentinel,
			Message:   fmt.Sprintf(messages.DoctorSentinelPresentFmt, cfg.Sentinel),
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameSentinel,
			Message:   fmt.Sprintf(messages.RebootStatPathFmt, cfg.Sentinel, err),
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameSentinel,
		Message:   fmt.Sprintf(messages.DoctorSentinelAbsentFmt, cfg.Sentinel),
	}
}

func readSystemID(sys modules.RealSystem, root string) ([]byte, error) {
	path, err := sys.HostPath(filepath.Join(root, config.SystemIDFile))
	if err != nil {
		return nil, err
	}
	return osReadFile(path)
}
