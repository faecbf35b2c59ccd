//go:build linux

package launch

import (
	"fmt"
	"os"
	"syscall"
)

// execBinary replaces the launcher process with the application, so the
// launcher never lingers as an extra parent in the process tree.
func execBinary(binary string, args []string) error {
	argv := append([]string{binary}, args...)
	if err := syscall.Exec(binary, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", binary, err)
	}
	return nil
}
