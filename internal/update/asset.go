package update

import "strings"

// archPatterns maps a running architecture (uname -m style) to the filename
// substrings that identify assets built for it. Matching is case-insensitive.
var archPatterns = map[string][]string{
	"x86_64":  {"x86_64", "x86-64", "amd64", "x64"},
	"aarch64": {"aarch64", "arm64"},
	"armv7l":  {"armv7l", "armhf", "arm32"},
	"i686":    {"i686", "i386", "x86", "ia32"},
}

// archAliases folds alternate arch spellings onto the pattern-table rows.
var archAliases = map[string]string{
	"i386":  "i686",
	"amd64": "x86_64",
	"arm64": "aarch64",
}

func archRow(systemArch string) []string {
	arch := strings.ToLower(systemArch)
	if canonical, ok := archAliases[arch]; ok {
		arch = canonical
	}
	return archPatterns[arch]
}

// SelectAsset picks the release asset to install for the running
// architecture. Only .AppImage files are considered. Priority, first hit
// wins:
//
//  1. an asset whose name carries a token for systemArch;
//  2. an asset whose name carries no recognizable arch token at all,
//     accepted only on x86_64 (unmarked builds are assumed x86_64);
//  3. the lone .AppImage when exactly one exists and its name carries no
//     recognizable arch token. A lone asset marked for a different
//     architecture is never selected.
func SelectAsset(assets []AssetInfo, systemArch string) (AssetInfo, bool) {
	var candidates []AssetInfo
	for _, a := range assets {
		if strings.HasSuffix(strings.ToLower(a.Name), ".appimage") {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return AssetInfo{}, false
	}

	tokens := archRow(systemArch)
	for _, a := range candidates {
		if containsAny(a.Name, tokens) {
			return a, true
		}
	}

	if sameArch(systemArch, "x86_64") {
		for _, a := range candidates {
			if !hasAnyArchToken(a.Name) {
				return a, true
			}
		}
	}

	if len(candidates) == 1 && !hasAnyArchToken(candidates[0].Name) {
		return candidates[0], true
	}
	return AssetInfo{}, false
}

func sameArch(a, b string) bool {
	a = strings.ToLower(a)
	if canonical, ok := archAliases[a]; ok {
		a = canonical
	}
	return a == b
}

func containsAny(name string, tokens []string) bool {
	lower := strings.ToLower(name)
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func hasAnyArchToken(name string) bool {
	for _, tokens := range archPatterns {
		if containsAny(name, tokens) {
			return true
		}
	}
	return false
}
