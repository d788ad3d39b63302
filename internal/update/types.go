package update

import "github.com/kem-a/AppManager/internal/registry"

// UpdateStatus is the terminal outcome of a probe or update for one record.
type UpdateStatus string

const (
	StatusUpdated UpdateStatus = "updated"
	StatusSkipped UpdateStatus = "skipped"
	StatusFailed  UpdateStatus = "failed"
)

// SkipReason explains why a record was skipped. Every reason is
// record-scoped; none of them aborts a batch.
type SkipReason string

const (
	SkipNone              SkipReason = ""
	SkipNoUpdateURL       SkipReason = "no_update_url"
	SkipUnsupportedSource SkipReason = "unsupported_source"
	SkipAlreadyCurrent    SkipReason = "already_current"
	SkipMissingAsset      SkipReason = "missing_asset"
	SkipAPIUnavailable    SkipReason = "api_unavailable"
	SkipNoTrackingHeaders SkipReason = "no_tracking_headers"
)

// AssetInfo is one downloadable file attached to a release.
type AssetInfo struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
	Size        int64  `json:"size"` // 0 when the origin API does not report it
}

// ReleaseInfo is one published release as returned by the origin API.
// Releases keep the API's order (assumed newest-first); the engine never
// re-sorts them.
type ReleaseInfo struct {
	TagName string `json:"tag_name"`
	// NormalizedVersion is the semver form parsed from the tag, empty when
	// the tag does not canonicalize.
	NormalizedVersion string      `json:"normalized_version,omitempty"`
	Assets            []AssetInfo `json:"assets"`
}

// UpdateProbeResult reports a check-only pass over one record. Exactly one
// of three shapes holds: a skip (Reason set), a failure (Failed set), or a
// completed check (HasUpdate meaningful).
type UpdateProbeResult struct {
	Record *registry.InstallationRecord `json:"-"`

	App              string     `json:"app"`
	HasUpdate        bool       `json:"has_update"`
	AvailableVersion string     `json:"available_version,omitempty"`
	Reason           SkipReason `json:"reason,omitempty"`
	Failed           bool       `json:"failed,omitempty"`
	Message          string     `json:"message,omitempty"`
}

// UpdateResult reports an apply pass over one record.
type UpdateResult struct {
	Record *registry.InstallationRecord `json:"-"`

	App        string       `json:"app"`
	Status     UpdateStatus `json:"status"`
	Reason     SkipReason   `json:"reason,omitempty"`
	NewVersion string       `json:"new_version,omitempty"`
	Message    string       `json:"message,omitempty"`
}
