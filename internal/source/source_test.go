package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appfetch/appfetch/internal/catalog"
)

func TestGitHubSourceResolve(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/brave/brave-browser/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		base := fmt.Sprintf("http://%s", r.Host)
		rel := githubRelease{
			TagName: "v1.64.109",
			Assets: []githubAsset{
				{Name: "brave-browser-1.64.109-linux-arm64.zip", BrowserDownloadUrl: base + "/arm64"},
				{Name: "brave-browser-1.64.109-linux-amd64.zip", BrowserDownloadUrl: base + "/amd64"},
				{Name: "brave-browser-1.64.109-linux-amd64.zip.sha256", BrowserDownloadUrl: base + "/sha"},
				{Name: "brave-browser-1.64.109-linux-amd64.zip.sha256.minisig", BrowserDownloadUrl: base + "/sig"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(&rel))
	}))
	defer ts.Close()
	t.Setenv("APPFETCH_GITHUB_API", ts.URL)

	src := newGitHubSource("brave/brave-browser", []string{`(?i)^brave-browser-[0-9.]+-linux-amd64\.zip$`})
	rel, err := src.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.64.109", rel.Version)
	assert.Equal(t, "brave-browser-1.64.109-linux-amd64.zip", rel.AssetName)
	assert.Equal(t, ts.URL+"/amd64", rel.DownloadURL)
	assert.Equal(t, ts.URL+"/sha", rel.ChecksumURL)
	assert.Equal(t, ts.URL+"/sig", rel.SigURL)
}

func TestGitHubSourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		release githubRelease
		wantErr string
	}{
		{
			name:    "empty tag",
			release: githubRelease{Assets: []githubAsset{{Name: "a.zip"}}},
			wantErr: "no version tag",
		},
		{
			name:    "no matching asset",
			release: githubRelease{TagName: "v1.0.0", Assets: []githubAsset{{Name: "readme.txt"}}},
			wantErr: "no asset matches",
		},
		{
			name: "ambiguous assets",
			release: githubRelease{TagName: "v1.0.0", Assets: []githubAsset{
				{Name: "app-linux-amd64.zip"},
				{Name: "app2-linux-amd64.zip"},
			}},
			wantErr: "multiple assets match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				require.NoError(t, json.NewEncoder(w).Encode(&tt.release))
			}))
			defer ts.Close()
			t.Setenv("APPFETCH_GITHUB_API", ts.URL)

			src := newGitHubSource("owner/repo", []string{`.*linux-amd64\.zip$`})
			_, err := src.Resolve(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGitHubSourceHTTPFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer ts.Close()
	t.Setenv("APPFETCH_GITHUB_API", ts.URL)

	src := newGitHubSource("owner/repo", nil)
	_, err := src.Resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestEndpointSourceResolve(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"url": "https://update.example.com/stable/abc123/code-stable-x64.tar.gz",
			"name": "1.92.1",
			"sha256hash": "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
		}`)
	}))
	defer ts.Close()

	src := newEndpointSource(ts.URL)
	rel, err := src.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.92.1", rel.Version)
	assert.Equal(t, "code-stable-x64.tar.gz", rel.AssetName)
	assert.Equal(t, "https://update.example.com/stable/abc123/code-stable-x64.tar.gz", rel.DownloadURL)
	assert.Equal(t, "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08", rel.SHA256)
}

func TestEndpointSourceMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"no version", `{"url": "https://example.com/a.tar.gz"}`, "no version"},
		{"no url", `{"version": "1.0.0"}`, "no download location"},
		{"bad json", `not json`, "parse update metadata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			src := newEndpointSource(ts.URL)
			_, err := src.Resolve(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEndpointPayloadVersionAliases(t *testing.T) {
	tests := []struct {
		payload endpointPayload
		want    string
	}{
		{endpointPayload{ProductVersion: "1.2.3", Name: "ignored"}, "1.2.3"},
		{endpointPayload{Version: "v2.0.0"}, "2.0.0"},
		{endpointPayload{Name: "1.92.1"}, "1.92.1"},
		{endpointPayload{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.payload.version())
	}
}

func TestForApp(t *testing.T) {
	gh, err := ForApp(&catalog.App{ID: "x", Source: catalog.SourceConfig{Type: "github", Repo: "a/b"}})
	require.NoError(t, err)
	assert.IsType(t, &githubSource{}, gh)

	ep, err := ForApp(&catalog.App{ID: "x", Source: catalog.SourceConfig{Type: "endpoint", URL: "https://example.com"}})
	require.NoError(t, err)
	assert.IsType(t, &endpointSource{}, ep)

	_, err = ForApp(&catalog.App{ID: "x", Source: catalog.SourceConfig{Type: "ftp"}})
	require.Error(t, err)
}
