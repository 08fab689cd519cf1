package reboot

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/nixos-needsreboot/internal/messages"
)

type fileLock struct {
	file *os.File
}

var flockFn = unix.Flock
var lockSleep = time.Sleep

var (
	lockWaitTimeout = 10 * time.Second
	lockPollEvery   = 50 * time.Millisecond
)

// withFileLock holds an exclusive advisory lock on path while fn runs.
func withFileLock(path string, fn func() error) error {
	lock, err := acquireFileLock(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.release()
	}()
	return fn()
}

func acquireFileLock(path string) (*fileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.RebootOpenLockFmt, path, err)
	}
	if err := lockFile(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.RebootLockFmt, path, err)
	}
	return &fileLock{file: file}, nil
}

func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := flockFn(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

// lockFile polls a non-blocking flock until it succeeds or lockWaitTimeout passes.
func lockFile(file *os.File) error {
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf(messages.RebootLockTimeoutFmt, lockWaitTimeout)
		}
		lockSleep(lockPollEvery)
	}
}
