package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

const defaultGitHubAPI = "https://api.github.com"

// githubAPIBase allows tests (and GHE users) to point release lookups at a
// different API host.
func githubAPIBase() string {
	base := strings.TrimSpace(os.Getenv("APPFETCH_GITHUB_API"))
	if base == "" {
		return defaultGitHubAPI
	}
	return strings.TrimRight(base, "/")
}

// githubRelease is the subset of the GitHub release payload appfetch uses.
type githubRelease struct {
	TagName string        `json:"tag_name"`
	Assets  []githubAsset `json:"assets"`
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadUrl string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

type githubSource struct {
	repo     string
	patterns []string
}

func newGitHubSource(repo string, patterns []string) *githubSource {
	return &githubSource{repo: repo, patterns: patterns}
}

func (s *githubSource) Resolve(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", githubAPIBase(), s.repo)
	body, err := getJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch release metadata: %w", err)
	}

	var rel githubRelease
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("parse release metadata: %w", err)
	}

	version := strings.TrimPrefix(strings.TrimSpace(rel.TagName), "v")
	if version == "" {
		return nil, fmt.Errorf("release for %s has no version tag", s.repo)
	}

	asset, err := selectAsset(rel.Assets, s.patterns)
	if err != nil {
		return nil, fmt.Errorf("repo %s: %w", s.repo, err)
	}

	out := &Release{
		Version:     version,
		AssetName:   asset.Name,
		DownloadURL: asset.BrowserDownloadUrl,
	}

	// Supplemental assets are optional; a release without them just skips
	// checksum/signature verification.
	checksum := findCompanionAsset(rel.Assets, asset.Name, checksumSuffixes)
	if checksum == nil {
		checksum = findAssetByName(rel.Assets, consolidatedChecksumNames)
	}
	if checksum != nil {
		out.ChecksumURL = checksum.BrowserDownloadUrl
		if sig := findCompanionAsset(rel.Assets, checksum.Name, signatureSuffixes); sig != nil {
			out.SigURL = sig.BrowserDownloadUrl
		}
	}

	return out, nil
}

var (
	checksumSuffixes  = []string{".sha256", ".sha256.txt"}
	signatureSuffixes = []string{".minisig"}

	consolidatedChecksumNames = []string{"SHA256SUMS", "SHA256SUMS.txt", "checksums.txt", "CHECKSUMS"}
)

func selectAsset(assets []githubAsset, patterns []string) (*githubAsset, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("release has no assets")
	}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid asset pattern %q: %w", pattern, err)
		}
		var selected *githubAsset
		for i := range assets {
			if !re.MatchString(assets[i].Name) {
				continue
			}
			if selected != nil {
				return nil, fmt.Errorf("multiple assets match %q: %s and %s", pattern, selected.Name, assets[i].Name)
			}
			selected = &assets[i]
		}
		if selected != nil {
			return selected, nil
		}
	}
	return nil, fmt.Errorf("no asset matches configured patterns")
}

// findCompanionAsset looks for "<base><suffix>" next to the given asset.
func findCompanionAsset(assets []githubAsset, base string, suffixes []string) *githubAsset {
	for _, suffix := range suffixes {
		want := base + suffix
		for i := range assets {
			if assets[i].Name == want {
				return &assets[i]
			}
		}
	}
	return nil
}

func findAssetByName(assets []githubAsset, names []string) *githubAsset {
	for _, name := range names {
		for i := range assets {
			if assets[i].Name == name {
				return &assets[i]
			}
		}
	}
	return nil
}
