// Package hostenv inspects the host filesystem environment before an
// install, so appfetch can refuse destinations where the installed binary
// could never run.
package hostenv

import (
	"path/filepath"
	"strings"
)

type mount struct {
	point   string
	options map[string]struct{}
}

// parseMountinfo reads /proc/self/mountinfo content. Per the kernel docs the
// fields are: id parent major:minor root mountpoint options ... "-" fstype
// source superopts. Mount flags can appear both before and after the "-"
// separator, so both sets are collected.
func parseMountinfo(content string) []mount {
	var out []mount
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		sep := -1
		for i, f := range fields {
			if f == "-" {
				sep = i
				break
			}
		}
		if sep < 0 || len(fields) < 6 {
			continue
		}

		m := mount{
			point:   unescapeMountPath(fields[4]),
			options: parseMountOptions(fields[5]),
		}
		if sep+3 < len(fields) {
			for opt := range parseMountOptions(fields[sep+3]) {
				m.options[opt] = struct{}{}
			}
		}
		out = append(out, m)
	}
	return out
}

// parseProcMounts reads the simpler /proc/mounts format:
// source mountpoint fstype options dump pass.
func parseProcMounts(content string) []mount {
	var out []mount
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		out = append(out, mount{
			point:   unescapeMountPath(fields[1]),
			options: parseMountOptions(fields[3]),
		})
	}
	return out
}

func parseMountOptions(opts string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, part := range strings.Split(opts, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m[part] = struct{}{}
	}
	return m
}

// Procfs encodes spaces and a few special characters with octal escapes.
// See proc(5).
var mountPathUnescaper = strings.NewReplacer(
	"\\040", " ",
	"\\011", "\t",
	"\\012", "\n",
	"\\134", "\\",
)

func unescapeMountPath(value string) string {
	return mountPathUnescaper.Replace(value)
}

// detectNoExec reports whether destPath sits on a noexec mount. The longest
// matching mount point wins, mirroring kernel path resolution.
func detectNoExec(destPath string, mounts []mount) bool {
	dest := filepath.ToSlash(filepath.Clean(destPath))
	if dest == "." || dest == "" {
		return false
	}

	bestLen := -1
	bestNoExec := false

	for _, m := range mounts {
		point := filepath.ToSlash(filepath.Clean(m.point))
		if point == "." || point == "" {
			continue
		}
		if !pathHasPrefix(dest, point) {
			continue
		}
		if len(point) > bestLen {
			bestLen = len(point)
			_, bestNoExec = m.options["noexec"]
		}
	}

	return bestNoExec
}

func pathHasPrefix(path, prefix string) bool {
	if prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
