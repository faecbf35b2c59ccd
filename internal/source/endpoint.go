package source

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// endpointSource resolves release metadata from a vendor update API that
// serves a single JSON document describing the latest build. Field names
// vary between vendors (the VS Code update API reports the version as "name"
// and the digest as "sha256hash"), so the common aliases are all accepted.
type endpointSource struct {
	url string
}

func newEndpointSource(url string) *endpointSource {
	return &endpointSource{url: url}
}

type endpointPayload struct {
	Version        string `json:"version"`
	ProductVersion string `json:"productVersion"`
	Name           string `json:"name"`
	URL            string `json:"url"`
	SHA256         string `json:"sha256"`
	SHA256Hash     string `json:"sha256hash"`
}

func (p *endpointPayload) version() string {
	for _, v := range []string{p.ProductVersion, p.Version, p.Name} {
		if strings.TrimSpace(v) != "" {
			return strings.TrimPrefix(strings.TrimSpace(v), "v")
		}
	}
	return ""
}

func (p *endpointPayload) digest() string {
	if p.SHA256 != "" {
		return strings.ToLower(strings.TrimSpace(p.SHA256))
	}
	return strings.ToLower(strings.TrimSpace(p.SHA256Hash))
}

func (s *endpointSource) Resolve(ctx context.Context) (*Release, error) {
	body, err := getJSON(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch update metadata: %w", err)
	}

	var payload endpointPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse update metadata from %s: %w", s.url, err)
	}

	version := payload.version()
	if version == "" {
		return nil, fmt.Errorf("update metadata from %s has no version", s.url)
	}
	if strings.TrimSpace(payload.URL) == "" {
		return nil, fmt.Errorf("update metadata from %s has no download location", s.url)
	}

	return &Release{
		Version:     version,
		AssetName:   path.Base(payload.URL),
		DownloadURL: payload.URL,
		SHA256:      payload.digest(),
	}, nil
}
