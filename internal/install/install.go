// Package install downloads, verifies, and places application releases under
// a per-user prefix, and records what is installed.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/appfetch/appfetch/internal/catalog"
	"github.com/appfetch/appfetch/internal/hostenv"
	"github.com/appfetch/appfetch/internal/source"
	"github.com/appfetch/appfetch/internal/verify"
)

// ErrNotInstalled is returned when an operation needs an installed
// application and none is present.
var ErrNotInstalled = errors.New("application is not installed")

// Installer owns the application tree: <root>/<app id>/<version>/... with a
// "current" symlink per app and an installed.json record.
type Installer struct {
	root string
	log  zerolog.Logger
}

func New(root string, log zerolog.Logger) *Installer {
	return &Installer{root: root, log: log}
}

// DefaultRoot is the per-user application prefix.
func DefaultRoot() string {
	return filepath.Join(xdg.DataHome, "appfetch", "apps")
}

func (i *Installer) appDir(id string) string {
	return filepath.Join(i.root, id)
}

// CurrentDir returns the path of an app's active version tree.
func (i *Installer) CurrentDir(id string) string {
	return filepath.Join(i.appDir(id), "current")
}

// BinaryPath returns the executable of the installed app, or ErrNotInstalled.
func (i *Installer) BinaryPath(app *catalog.App) (string, error) {
	path := filepath.Join(i.CurrentDir(app.ID), app.Binary)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%s: %w", app.ID, ErrNotInstalled)
	}
	return path, nil
}

// Install runs the full fetch+install workflow for one resolved release.
// All intermediate state lives in a temp working directory that is removed
// on every exit path; a failed install never leaves a partial tree behind.
func (i *Installer) Install(ctx context.Context, app *catalog.App, rel *source.Release) error {
	if hostenv.IsNoExecMount(i.root) {
		return fmt.Errorf("install prefix %s is on a noexec mount; choose another --root", i.root)
	}

	tmpDir, err := os.MkdirTemp("", "appfetch-*")
	if err != nil {
		return fmt.Errorf("mkdir temp: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	assetPath := filepath.Join(tmpDir, rel.AssetName)
	size, err := download(ctx, rel.DownloadURL, assetPath)
	if err != nil {
		return fmt.Errorf("download %s: %w", app.ID, err)
	}
	i.log.Info().Str("app", app.ID).Str("asset", rel.AssetName).
		Str("size", verify.FormatSize(size)).Msg("Downloaded release asset")

	if err := i.verifyAsset(ctx, app, rel, tmpDir, assetPath); err != nil {
		return fmt.Errorf("verify %s: %w", app.ID, err)
	}

	extractDir := filepath.Join(tmpDir, "extract")
	if err := // #nosec G301 -- extractDir tmpdir controlled
	os.Mkdir(extractDir, 0o755); err != nil {
		return fmt.Errorf("mkdir extract: %w", err)
	}
	if err := extractArchive(assetPath, extractDir); err != nil {
		return err
	}

	binPath := filepath.Join(extractDir, app.Binary)
	if _, err := os.Stat(binPath); err != nil {
		return fmt.Errorf("binary %s not found in archive", app.Binary)
	}
	if err := // #nosec G302 -- binPath extracted tmp chmod +x safe
	os.Chmod(binPath, 0o755); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	appDir := i.appDir(app.ID)
	versionDir := filepath.Join(appDir, rel.Version)
	if err := // #nosec G301 -- appDir under user prefix
	os.MkdirAll(appDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", appDir, err)
	}
	// A re-run at the same version replaces the old tree.
	if err := os.RemoveAll(versionDir); err != nil {
		return fmt.Errorf("clear %s: %w", versionDir, err)
	}
	if err := moveTree(extractDir, versionDir); err != nil {
		return fmt.Errorf("install to %s: %w", versionDir, err)
	}

	if err := switchCurrent(appDir, rel.Version); err != nil {
		return err
	}

	if err := writeRecord(appDir, Record{
		Version:     rel.Version,
		AssetName:   rel.AssetName,
		InstalledAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	i.log.Info().Str("app", app.ID).Str("version", rel.Version).Msg("Installed")
	return nil
}

// verifyAsset checks the downloaded asset against whatever integrity
// material the source published: an inline digest, a checksum file, and
// optionally a minisign signature over that checksum file.
func (i *Installer) verifyAsset(ctx context.Context, app *catalog.App, rel *source.Release, tmpDir, assetPath string) error {
	expected := rel.SHA256

	if expected == "" && rel.ChecksumURL != "" {
		checksumPath := filepath.Join(tmpDir, "checksums")
		if _, err := download(ctx, rel.ChecksumURL, checksumPath); err != nil {
			return fmt.Errorf("download checksum file: %w", err)
		}
		checksumBytes, err := os.ReadFile(checksumPath) // #nosec G304 -- checksumPath tmp controlled
		if err != nil {
			return fmt.Errorf("read checksum file: %w", err)
		}

		if rel.SigURL != "" && app.Source.MinisignKey != "" {
			sigPath := filepath.Join(tmpDir, "checksums.minisig")
			if _, err := download(ctx, rel.SigURL, sigPath); err != nil {
				return fmt.Errorf("download checksum signature: %w", err)
			}
			if err := verify.VerifyMinisign(checksumBytes, sigPath, app.Source.MinisignKey); err != nil {
				return err
			}
			i.log.Info().Str("app", app.ID).Msg("Minisign checksum signature verified OK")
		}

		expected, err = verify.ExtractChecksum(checksumBytes, "sha256", rel.AssetName)
		if err != nil {
			return err
		}
	}

	if expected == "" {
		i.log.Warn().Str("app", app.ID).Msg("Source publishes no checksum; skipping integrity verification")
		return nil
	}

	actual, err := verify.FileDigest(assetPath, "sha256")
	if err != nil {
		return err
	}
	if actual != strings.ToLower(expected) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	i.log.Info().Str("app", app.ID).Msg("Checksum verified OK")
	return nil
}

func download(ctx context.Context, url, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return 0, fmt.Errorf("status %d from %s: %s", resp.StatusCode, url, strings.TrimSpace(string(body)))
	}

	f, err := os.Create(path) // #nosec G304 -- path tmp controlled
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return n, nil
}

func extractArchive(assetPath, extractDir string) error {
	var cmd *exec.Cmd
	switch archiveType(assetPath) {
	case "zip":
		// #nosec G204 -- assetPath tmp controlled
		cmd = exec.Command("unzip", "-q", assetPath, "-d", extractDir)
	case "tar.xz":
		// #nosec G204 -- assetPath tmp controlled
		cmd = exec.Command("tar", "xJf", assetPath, "-C", extractDir)
	case "tar.bz2":
		// #nosec G204 -- assetPath tmp controlled
		cmd = exec.Command("tar", "xjf", assetPath, "-C", extractDir)
	case "tar.gz":
		// #nosec G204 -- assetPath tmp controlled
		cmd = exec.Command("tar", "xzf", assetPath, "-C", extractDir)
	default:
		return fmt.Errorf("unsupported archive type for %s", filepath.Base(assetPath))
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("extract archive: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func archiveType(assetPath string) string {
	lower := strings.ToLower(assetPath)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return "zip"
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return "tar.xz"
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz2"):
		return "tar.bz2"
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return "tar.gz"
	default:
		return ""
	}
}

// moveTree renames src into place, falling back to a copy when the temp dir
// and the install prefix sit on different filesystems.
func moveTree(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyTree(src, dst); err != nil {
		os.RemoveAll(dst)
		return err
	}
	return nil
}

func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		switch {
		case info.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src) // #nosec G304 -- src tmp controlled
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) // #nosec G304 -- dst under install prefix
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// switchCurrent atomically points the "current" symlink at a version dir.
func switchCurrent(appDir, version string) error {
	next := filepath.Join(appDir, ".current-next")
	if err := os.Remove(next); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear staging symlink: %w", err)
	}
	if err := os.Symlink(version, next); err != nil {
		return fmt.Errorf("stage current symlink: %w", err)
	}
	if err := os.Rename(next, filepath.Join(appDir, "current")); err != nil {
		return fmt.Errorf("switch current symlink: %w", err)
	}
	return nil
}
