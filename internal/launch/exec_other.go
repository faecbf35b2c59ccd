//go:build !linux

package launch

import (
	"fmt"
	"os"
	"os/exec"
)

func execBinary(binary string, args []string) error {
	cmd := exec.Command(binary, args...) // #nosec G204 -- binary under the install prefix
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", binary, err)
	}
	return nil
}
