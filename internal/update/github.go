package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultGithubAPI = "https://api.github.com"

type githubRelease struct {
	TagName string        `json:"tag_name"`
	Assets  []githubAsset `json:"assets"`
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// fetchGithubReleases lists recent releases for a GitHub project, newest
// first, exactly as the API returns them.
func (u *Updater) fetchGithubReleases(ctx context.Context, src GithubRelease) ([]ReleaseInfo, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d",
		u.githubAPI, src.Owner, src.Repo, releasePageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API error: %s", resp.Status)
	}

	var raw []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse releases: %w", err)
	}

	releases := make([]ReleaseInfo, 0, len(raw))
	for _, r := range raw {
		rel := ReleaseInfo{
			TagName:           r.TagName,
			NormalizedVersion: NormalizeTag(r.TagName),
		}
		for _, a := range r.Assets {
			rel.Assets = append(rel.Assets, AssetInfo{
				Name:        a.Name,
				DownloadURL: a.BrowserDownloadURL,
				Size:        a.Size,
			})
		}
		releases = append(releases, rel)
	}
	return releases, nil
}
