package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/kem-a/AppManager/internal/installer"
	"github.com/kem-a/AppManager/internal/registry"
	"github.com/kem-a/AppManager/internal/sysinfo"
)

const (
	userAgent      = "AppManager"
	defaultTimeout = 30 * time.Second
)

// HTTPDoer is the HTTP surface the engine depends on (allows mocking).
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// ProgressFunc receives byte counts while an asset downloads. total is 0 when
// the origin does not report a size. Called from the downloading goroutine.
type ProgressFunc func(app string, current, total int64)

// Options configures an Updater. Every field is optional.
type Options struct {
	HTTP        HTTPDoer            // default: http.Client with 30s timeout
	Arch        string              // default: sysinfo.Arch()
	Installer   installer.Installer // default: installer.New()
	Observer    Observer            // lifecycle event sink, may be nil
	Log         io.Writer           // terminal-event log sink, may be nil
	Concurrency int                 // batch width, default 5
	GithubAPI   string              // default: https://api.github.com
	DownloadDir string              // default: os.TempDir()
	Progress    ProgressFunc        // download progress hook, may be nil
}

// Updater orchestrates the per-record pipeline: resolve the source, fetch
// and select, decide newer-or-not, and on apply download and delegate to the
// installer. Safe for concurrent use; each probe/update task owns exactly
// one record for its lifetime.
type Updater struct {
	http        HTTPDoer
	arch        string
	installer   installer.Installer
	observer    Observer
	log         *EventLog
	concurrency int
	githubAPI   string
	downloadDir string
	progress    ProgressFunc

	freeSpace func(dir string) (uint64, error)
}

// New builds an Updater, filling unset options with defaults.
func New(opts Options) *Updater {
	u := &Updater{
		http:        opts.HTTP,
		arch:        opts.Arch,
		installer:   opts.Installer,
		observer:    opts.Observer,
		log:         NewEventLog(opts.Log),
		concurrency: opts.Concurrency,
		githubAPI:   strings.TrimRight(opts.GithubAPI, "/"),
		downloadDir: opts.DownloadDir,
		progress:    opts.Progress,
		freeSpace: func(dir string) (uint64, error) {
			usage, err := disk.Usage(dir)
			if err != nil {
				return 0, err
			}
			return usage.Free, nil
		},
	}
	if u.http == nil {
		u.http = &http.Client{Timeout: defaultTimeout}
	}
	if u.arch == "" {
		u.arch = sysinfo.Arch()
	}
	if u.installer == nil {
		u.installer = installer.New()
	}
	if u.concurrency <= 0 {
		u.concurrency = defaultConcurrency
	}
	if u.githubAPI == "" {
		u.githubAPI = defaultGithubAPI
	}
	if u.downloadDir == "" {
		u.downloadDir = os.TempDir()
	}
	return u
}

// Probe checks one record for an available update without downloading.
func (u *Updater) Probe(ctx context.Context, rec *registry.InstallationRecord) UpdateProbeResult {
	res := UpdateProbeResult{Record: rec, App: rec.Name}

	link := rec.EffectiveUpdateLink()
	if link == "" {
		return u.probeSkip(res, SkipNoUpdateURL, "no update URL configured")
	}
	src, ok := Resolve(link)
	if !ok {
		return u.probeSkip(res, SkipUnsupportedSource, "unsupported update URL: "+link)
	}

	u.emit(Event{Kind: EventChecking, App: rec.Name})

	switch s := src.(type) {
	case DirectURL:
		head, err := u.headRemote(ctx, s.URL)
		if err != nil {
			return u.probeSkip(res, SkipAPIUnavailable, err.Error())
		}
		fp, err := BuildFingerprint(head.lastModified, head.contentLength)
		if err != nil {
			return u.probeSkip(res, SkipNoTrackingHeaders, "source exposes no Last-Modified or Content-Length")
		}
		if fp == storedFingerprint(rec) {
			return u.probeSkip(res, SkipAlreadyCurrent, "content fingerprint unchanged")
		}
		res.HasUpdate = true
	default:
		rel, _, out, ok := u.matchRelease(ctx, src, res.App)
		if !ok {
			res.Reason = out.Reason
			res.Message = out.Message
			return res
		}
		if !hasNewerRelease(rec, rel) {
			return u.probeSkip(res, SkipAlreadyCurrent, "already at "+rel.TagName)
		}
		res.HasUpdate = true
		res.AvailableVersion = availableVersion(rel)
	}

	u.emit(Event{Kind: EventSucceeded, App: res.App, Version: res.AvailableVersion})
	return res
}

// Update checks one record and, when a newer asset exists, downloads it and
// delegates installation. On success the record's tracking fields for the
// matched source type are updated in place; persisting them is the caller's
// job.
func (u *Updater) Update(ctx context.Context, rec *registry.InstallationRecord) UpdateResult {
	res := UpdateResult{Record: rec, App: rec.Name}

	link := rec.EffectiveUpdateLink()
	if link == "" {
		return u.skip(res, SkipNoUpdateURL, "no update URL configured")
	}
	src, ok := Resolve(link)
	if !ok {
		return u.skip(res, SkipUnsupportedSource, "unsupported update URL: "+link)
	}

	u.emit(Event{Kind: EventChecking, App: rec.Name})

	switch s := src.(type) {
	case DirectURL:
		return u.updateDirect(ctx, rec, res, s)
	default:
		return u.updateRelease(ctx, rec, res, src)
	}
}

func (u *Updater) updateDirect(ctx context.Context, rec *registry.InstallationRecord, res UpdateResult, src DirectURL) UpdateResult {
	head, err := u.headRemote(ctx, src.URL)
	if err != nil {
		return u.skip(res, SkipAPIUnavailable, err.Error())
	}
	fp, err := BuildFingerprint(head.lastModified, head.contentLength)
	if err != nil {
		return u.skip(res, SkipNoTrackingHeaders, "source exposes no Last-Modified or Content-Length")
	}
	if fp == storedFingerprint(rec) {
		return u.skip(res, SkipAlreadyCurrent, "content fingerprint unchanged")
	}

	u.emit(Event{Kind: EventDownloading, App: res.App})
	path, cleanup, err := u.download(ctx, res.App, src.URL, 0)
	if err != nil {
		return u.fail(res, "download: "+err.Error())
	}
	defer cleanup()

	if err := u.installer.Upgrade(ctx, rec, path); err != nil {
		return u.fail(res, "install: "+err.Error())
	}

	rec.LastModified = head.lastModified
	rec.ContentLength = head.contentLength
	res.Status = StatusUpdated
	u.log.updated(res.App, "replaced from "+src.URL)
	u.emit(Event{Kind: EventSucceeded, App: res.App})
	return res
}

func (u *Updater) updateRelease(ctx context.Context, rec *registry.InstallationRecord, res UpdateResult, src UpdateSource) UpdateResult {
	rel, asset, out, ok := u.matchRelease(ctx, src, res.App)
	if !ok {
		res.Status = StatusSkipped
		res.Reason = out.Reason
		res.Message = out.Message
		return res
	}
	if !hasNewerRelease(rec, rel) {
		return u.skip(res, SkipAlreadyCurrent, "already at "+rel.TagName)
	}

	version := availableVersion(rel)
	u.emit(Event{Kind: EventDownloading, App: res.App, Version: version})

	path, cleanup, err := u.download(ctx, res.App, asset.DownloadURL, asset.Size)
	if err != nil {
		return u.fail(res, "download "+asset.Name+": "+err.Error())
	}
	defer cleanup()

	if err := u.installer.Upgrade(ctx, rec, path); err != nil {
		return u.fail(res, "install "+asset.Name+": "+err.Error())
	}

	rec.Version = version
	rec.LastReleaseTag = rel.TagName
	res.Status = StatusUpdated
	res.NewVersion = version
	u.log.updated(res.App, "updated to "+rel.TagName)
	u.emit(Event{Kind: EventSucceeded, App: res.App, Version: version})
	return res
}

// ProbeAll checks every record through the bounded batch scheduler. One
// result per input record, positionally; per-record failures never abort
// siblings.
func (u *Updater) ProbeAll(ctx context.Context, records []*registry.InstallationRecord) []UpdateProbeResult {
	return runBatch(ctx, len(records), u.concurrency,
		func(i int) UpdateProbeResult { return u.Probe(ctx, records[i]) },
		func(i int) UpdateProbeResult {
			return UpdateProbeResult{Record: records[i], App: records[i].Name, Failed: true, Message: "canceled"}
		})
}

// UpdateAll applies updates to every record through the batch scheduler.
func (u *Updater) UpdateAll(ctx context.Context, records []*registry.InstallationRecord) []UpdateResult {
	return runBatch(ctx, len(records), u.concurrency,
		func(i int) UpdateResult { return u.Update(ctx, records[i]) },
		func(i int) UpdateResult {
			return UpdateResult{Record: records[i], App: records[i].Name, Status: StatusFailed, Message: "canceled"}
		})
}

// matchRelease fetches the release page for a source and picks the first
// release with an installable asset. The second return carries the skip
// outcome when no match exists.
func (u *Updater) matchRelease(ctx context.Context, src UpdateSource, app string) (ReleaseInfo, AssetInfo, UpdateResult, bool) {
	var (
		releases []ReleaseInfo
		err      error
	)
	switch s := src.(type) {
	case GithubRelease:
		releases, err = u.fetchGithubReleases(ctx, s)
	case GitlabRelease:
		releases, err = u.fetchGitlabReleases(ctx, s)
	default:
		err = fmt.Errorf("unexpected source %T", src)
	}
	if err != nil {
		u.log.skip(app, SkipAPIUnavailable, err.Error())
		u.emit(Event{Kind: EventSkipped, App: app, Reason: SkipAPIUnavailable, Message: err.Error()})
		return ReleaseInfo{}, AssetInfo{}, UpdateResult{Reason: SkipAPIUnavailable, Message: err.Error()}, false
	}

	rel, asset, ok := findMatchingAsset(releases, u.arch)
	if !ok {
		msg := "no AppImage asset for " + u.arch
		u.log.skip(app, SkipMissingAsset, msg)
		u.emit(Event{Kind: EventSkipped, App: app, Reason: SkipMissingAsset, Message: msg})
		return ReleaseInfo{}, AssetInfo{}, UpdateResult{Reason: SkipMissingAsset, Message: msg}, false
	}
	return rel, asset, UpdateResult{}, true
}

// hasNewerRelease decides whether rel is newer than what the record has.
// Numeric comparison wins when it is conclusive; otherwise any tag
// difference counts as evidence of a new release, ordering unknown.
func hasNewerRelease(rec *registry.InstallationRecord, rel ReleaseInfo) bool {
	switch CompareVersions(rel.TagName, rec.Version) {
	case OrderGreater:
		return true
	case OrderLess, OrderEqual:
		return false
	}
	return rel.TagName != rec.LastReleaseTag
}

func availableVersion(rel ReleaseInfo) string {
	if rel.NormalizedVersion != "" {
		return rel.NormalizedVersion
	}
	return strings.TrimPrefix(strings.TrimPrefix(rel.TagName, "v"), "V")
}

// storedFingerprint rebuilds the fingerprint last persisted on the record,
// or "" when the record has never been fingerprinted.
func storedFingerprint(rec *registry.InstallationRecord) string {
	fp, err := BuildFingerprint(rec.LastModified, rec.ContentLength)
	if err != nil {
		return ""
	}
	return fp
}

type remoteHead struct {
	lastModified  string
	contentLength string
}

// headRemote issues the header-only probe against a direct URL.
func (u *Updater) headRemote(ctx context.Context, rawURL string) (remoteHead, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return remoteHead{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.http.Do(req)
	if err != nil {
		return remoteHead{}, fmt.Errorf("probe %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteHead{}, fmt.Errorf("probe %s: %s", rawURL, resp.Status)
	}

	head := remoteHead{
		lastModified:  resp.Header.Get("Last-Modified"),
		contentLength: resp.Header.Get("Content-Length"),
	}
	if head.contentLength == "" && resp.ContentLength >= 0 {
		head.contentLength = strconv.FormatInt(resp.ContentLength, 10)
	}
	return head, nil
}

// download fetches a URL into a fresh file under the download directory and
// returns its path plus a cleanup func. When the expected size is known, the
// target filesystem is checked for room first.
func (u *Updater) download(ctx context.Context, app, rawURL string, expectedSize int64) (string, func(), error) {
	if expectedSize > 0 {
		if free, err := u.freeSpace(u.downloadDir); err == nil && free < uint64(expectedSize) {
			return "", nil, fmt.Errorf("insufficient disk space: need %d bytes, %d free", expectedSize, free)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.http.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("download failed: %s", resp.Status)
	}

	dir, err := os.MkdirTemp(u.downloadDir, "appman-download-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, downloadName(rawURL))
	f, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, err
	}

	var dst io.Writer = f
	if u.progress != nil {
		total := expectedSize
		if total == 0 && resp.ContentLength > 0 {
			total = resp.ContentLength
		}
		dst = &progressWriter{w: f, app: app, total: total, fn: u.progress}
	}
	_, err = io.Copy(dst, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

type progressWriter struct {
	w       io.Writer
	app     string
	total   int64
	written int64
	fn      ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	p.fn(p.app, p.written, p.total)
	return n, err
}

func downloadName(rawURL string) string {
	name := filepath.Base(strings.SplitN(rawURL, "?", 2)[0])
	if name == "" || name == "." || name == "/" {
		return "download.AppImage"
	}
	return name
}

func (u *Updater) probeSkip(res UpdateProbeResult, reason SkipReason, msg string) UpdateProbeResult {
	res.Reason = reason
	res.Message = msg
	u.log.skip(res.App, reason, msg)
	u.emit(Event{Kind: EventSkipped, App: res.App, Reason: reason, Message: msg})
	return res
}

func (u *Updater) skip(res UpdateResult, reason SkipReason, msg string) UpdateResult {
	res.Status = StatusSkipped
	res.Reason = reason
	res.Message = msg
	u.log.skip(res.App, reason, msg)
	u.emit(Event{Kind: EventSkipped, App: res.App, Reason: reason, Message: msg})
	return res
}

func (u *Updater) fail(res UpdateResult, msg string) UpdateResult {
	res.Status = StatusFailed
	res.Message = msg
	u.log.failed(res.App, msg)
	u.emit(Event{Kind: EventFailed, App: res.App, Message: msg})
	return res
}
