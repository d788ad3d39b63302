package update

// releasePageSize bounds every releases-list request. One page is enough:
// the engine only needs the first release that carries an installable asset.
const releasePageSize = 10

// findMatchingAsset walks releases in API order and returns the first one
// for which the selector finds an asset for systemArch. The releases
// sequence is assumed newest-first and is never re-sorted.
func findMatchingAsset(releases []ReleaseInfo, systemArch string) (ReleaseInfo, AssetInfo, bool) {
	for _, rel := range releases {
		if asset, ok := SelectAsset(rel.Assets, systemArch); ok {
			return rel, asset, true
		}
	}
	return ReleaseInfo{}, AssetInfo{}, false
}
