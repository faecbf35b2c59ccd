//go:build !linux

package hostenv

// IsNoExecMount is a no-op off Linux; procfs is the only supported probe.
func IsNoExecMount(destPath string) bool {
	return false
}
