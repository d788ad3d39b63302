package registry

import "strings"

// InstallationRecord describes one installed AppImage tracked by the manager.
// The update engine reads it and, after a successful update, writes back the
// tracking fields relevant to the matched source type (Version/LastReleaseTag
// for release sources, LastModified/ContentLength for direct URLs). Records
// are created and persisted by the registry, never by the engine.
type InstallationRecord struct {
	Name string `json:"name"`
	Path string `json:"path"` // installed AppImage location

	Version        string `json:"version,omitempty"`
	LastReleaseTag string `json:"last_release_tag,omitempty"`

	// Direct-URL change-detection fingerprint components, stored verbatim
	// from the HTTP response headers.
	LastModified  string `json:"last_modified,omitempty"`
	ContentLength string `json:"content_length,omitempty"`

	// OriginalUpdateLink comes from the AppImage's own metadata;
	// CustomUpdateLink is a user override. Clearing the custom link falls
	// back to the original one.
	OriginalUpdateLink string `json:"original_update_link,omitempty"`
	CustomUpdateLink   string `json:"custom_update_link,omitempty"`
}

// EffectiveUpdateLink returns the URL the engine should poll: the custom
// link when set, otherwise the original one. Empty means the record has no
// update source configured.
func (r *InstallationRecord) EffectiveUpdateLink() string {
	if link := strings.TrimSpace(r.CustomUpdateLink); link != "" {
		return link
	}
	return strings.TrimSpace(r.OriginalUpdateLink)
}

// Store abstracts record persistence. The update engine only ever sees
// records through this interface; the caller decides when to persist
// mutations written back by a successful update.
type Store interface {
	LoadAll() ([]*InstallationRecord, error)
	Save(records []*InstallationRecord) error
}
