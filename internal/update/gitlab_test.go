package update

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func TestFetchGitlabReleases(t *testing.T) {
	var gotURL string
	u := New(Options{HTTP: doerFunc(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return jsonResponse(http.StatusOK, `[
			{"tag_name":"v5.2","assets":{"links":[
				{"name":"Tool-x86_64.AppImage","url":"https://gitlab.example.com/fallback","direct_asset_url":"https://gitlab.example.com/direct"},
				{"name":"Tool-aarch64.AppImage","url":"https://gitlab.example.com/arm-only","direct_asset_url":""}
			]}}
		]`), nil
	})})

	releases, err := u.fetchGitlabReleases(context.Background(), GitlabRelease{
		Host:        "gitlab.example.com",
		ProjectPath: "group/subgroup/tool",
	})
	if err != nil {
		t.Fatalf("fetchGitlabReleases: %v", err)
	}

	// The project path must travel as one percent-encoded segment.
	want := "https://gitlab.example.com/api/v4/projects/group%2Fsubgroup%2Ftool/releases?per_page=10"
	if gotURL != want {
		t.Errorf("request URL = %q, want %q", gotURL, want)
	}
	if len(releases) != 1 || len(releases[0].Assets) != 2 {
		t.Fatalf("releases = %+v", releases)
	}
	if got := releases[0].Assets[0].DownloadURL; got != "https://gitlab.example.com/direct" {
		t.Errorf("direct_asset_url not preferred, got %q", got)
	}
	if got := releases[0].Assets[1].DownloadURL; got != "https://gitlab.example.com/arm-only" {
		t.Errorf("url fallback not used, got %q", got)
	}
	if releases[0].Assets[0].Size != 0 {
		t.Errorf("gitlab link size should be 0, got %d", releases[0].Assets[0].Size)
	}
}

func TestFetchGitlabReleasesAPIError(t *testing.T) {
	u := New(Options{HTTP: doerFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"message":"404 Project Not Found"}`), nil
	})})

	_, err := u.fetchGitlabReleases(context.Background(), GitlabRelease{Host: "gitlab.com", ProjectPath: "x/y"})
	if err == nil {
		t.Fatal("want error on 404 response")
	}
}
