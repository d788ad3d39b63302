package update

import (
	"net/url"
	"strings"
)

// UpdateSource is the closed set of places an update can come from. Resolve
// returns exactly one variant or none; values are immutable once resolved.
type UpdateSource interface{ updateSource() }

// DirectURL is an arbitrary download location with no release metadata.
type DirectURL struct{ URL string }

// GithubRelease identifies a github.com project polled via the releases API.
type GithubRelease struct{ Owner, Repo string }

// GitlabRelease identifies a GitLab project. Host is kept verbatim so
// self-hosted instances work; ProjectPath may contain nested groups.
type GitlabRelease struct{ Host, ProjectPath string }

func (DirectURL) updateSource()     {}
func (GithubRelease) updateSource() {}
func (GitlabRelease) updateSource() {}

// Resolve classifies an update URL into a source variant. Dispatch order is
// fixed: exact host github.com, then any host containing "gitlab", then any
// remaining http(s) URL as a direct download. Unparseable or unclassifiable
// URLs resolve to nothing (reported as an unsupported source by the caller).
//
// A host that contains both "github" and "gitlab" substrings is not
// disambiguated beyond this order.
func Resolve(updateLink string) (UpdateSource, bool) {
	u, err := url.Parse(strings.TrimSpace(updateLink))
	if err != nil || u.Host == "" {
		return nil, false
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "github.com":
		owner, repo, ok := githubProject(u.Path)
		if !ok {
			return nil, false
		}
		return GithubRelease{Owner: owner, Repo: repo}, true
	case strings.Contains(host, "gitlab"):
		project, ok := gitlabProject(u.Path)
		if !ok {
			return nil, false
		}
		return GitlabRelease{Host: u.Host, ProjectPath: project}, true
	case u.Scheme == "http" || u.Scheme == "https":
		return DirectURL{URL: u.String()}, true
	}
	return nil, false
}

// githubProject extracts owner/repo, truncating release-asset download paths
// (owner/repo/releases/download/<tag>/<asset>) to the project root so a URL
// copied from a release asset still resolves for future polling.
func githubProject(path string) (owner, repo string, ok bool) {
	parts := splitPath(path)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// gitlabProject extracts the full project path, dropping the "/-/" suffix
// GitLab uses for in-project routes such as /-/releases/<tag>/downloads/...
func gitlabProject(path string) (string, bool) {
	if i := strings.Index(path, "/-/"); i >= 0 {
		path = path[:i]
	}
	parts := splitPath(path)
	if len(parts) < 2 {
		return "", false
	}
	return strings.Join(parts, "/"), true
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
