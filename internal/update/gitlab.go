package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type gitlabRelease struct {
	TagName string `json:"tag_name"`
	Assets  struct {
		Links []gitlabLink `json:"links"`
	} `json:"assets"`
}

type gitlabLink struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	DirectAssetURL string `json:"direct_asset_url"`
}

// fetchGitlabReleases lists recent releases for a GitLab project. The host
// is used verbatim so self-hosted instances work; the project path is
// percent-encoded as a single path segment per the GitLab API contract.
// Release assets come from the link collection, preferring the direct-asset
// URL over the generic one. GitLab does not report link sizes, so Size is 0.
func (u *Updater) fetchGitlabReleases(ctx context.Context, src GitlabRelease) ([]ReleaseInfo, error) {
	endpoint := fmt.Sprintf("https://%s/api/v4/projects/%s/releases?per_page=%d",
		src.Host, url.PathEscape(src.ProjectPath), releasePageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitLab API error: %s", resp.Status)
	}

	var raw []gitlabRelease
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse releases: %w", err)
	}

	releases := make([]ReleaseInfo, 0, len(raw))
	for _, r := range raw {
		rel := ReleaseInfo{
			TagName:           r.TagName,
			NormalizedVersion: NormalizeTag(r.TagName),
		}
		for _, l := range r.Assets.Links {
			download := l.DirectAssetURL
			if download == "" {
				download = l.URL
			}
			rel.Assets = append(rel.Assets, AssetInfo{
				Name:        l.Name,
				DownloadURL: download,
			})
		}
		releases = append(releases, rel)
	}
	return releases, nil
}
