package reboot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/nixos-needsreboot/internal/messages"
)

var osCreateTemp = os.CreateTemp

// writeSentinel atomically replaces path with content while holding path.lock.
func writeSentinel(path string, content string) error {
	return withFileLock(path+".lock", func() error {
		tmp, err := osCreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
		if err != nil {
			return fmt.Errorf(messages.RebootCreateTempFmt, err)
		}
		tmpName := tmp.Name()
		committed := false
		defer func() {
			if !committed {
				_ = os.Remove(tmpName)
			}
		}()

		if _, err := tmp.WriteString(content); err != nil {
			_ = tmp.Close()
			return fmt.Errorf(messages.RebootWriteTempFmt, err)
		}
		if err := tmp.Chmod(0o644); err != nil {
			_ = tmp.Close()
			return fmt.Errorf(messages.RebootWriteTempFmt, err)
		}
		if err := tmp.Sync(); err != nil {
			_ = tmp.Close()
			return fmt.Errorf(messages.RebootSyncTempFmt, err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf(messages.RebootCloseTempFmt, err)
		}
		if err := os.Rename(tmpName, path); err != nil {
			return fmt.Errorf(messages.RebootRenameTempFmt, err)
		}
		committed = true
		return nil
	})
}
