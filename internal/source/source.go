// Package source resolves release metadata (version, download location) for
// catalog applications. It never downloads or installs release artifacts.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/appfetch/appfetch/internal/catalog"
)

// Release is the metadata a source yields for the newest available version.
type Release struct {
	Version     string // non-empty dotted version, no leading "v"
	AssetName   string
	DownloadURL string
	SHA256      string // hex digest supplied inline by the source, if any
	ChecksumURL string // checksum file covering AssetName, if published
	SigURL      string // minisign signature over the checksum file, if published
}

// Source is the package metadata collaborator: it yields a version and a
// resolvable download location, or an explicit failure.
type Source interface {
	Resolve(ctx context.Context) (*Release, error)
}

// ForApp returns the Source configured for a catalog entry.
func ForApp(app *catalog.App) (Source, error) {
	switch app.Source.Type {
	case "github":
		return newGitHubSource(app.Source.Repo, app.Source.AssetPatterns), nil
	case "endpoint":
		return newEndpointSource(app.Source.URL), nil
	default:
		return nil, fmt.Errorf("app %s: unsupported source type %q", app.ID, app.Source.Type)
	}
}

// version is stamped at build time by the main package.
var userAgentVersion = "dev"

// SetUserAgentVersion lets the main package stamp the build version into
// outgoing request headers.
func SetUserAgentVersion(v string) {
	if v != "" {
		userAgentVersion = v
	}
}

func tokenFromEnv() string {
	if tok := strings.TrimSpace(os.Getenv("APPFETCH_GITHUB_TOKEN")); tok != "" {
		return tok
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

func httpGet(ctx context.Context, url string) (*http.Response, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fmt.Sprintf("appfetch/%s", userAgentVersion))
	if tok := tokenFromEnv(); tok != "" && strings.Contains(url, "github.com") {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return client.Do(req)
}

func getJSON(ctx context.Context, url string) ([]byte, error) {
	resp, err := httpGet(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d from %s: %s", resp.StatusCode, url, strings.TrimSpace(string(body)))
	}
	return io.ReadAll(resp.Body)
}
