package core

import "github.com/unascribed/FlexVer/go/flexver"

// SortAndDedupeVersions sorts versions by FlexVer ordering (oldest first)
// and removes adjacent duplicates, the same algorithm as the teacher's
// core/versionutil.go SortAndDedupeVersions -- except that function discards
// its own truncation (`versions = versions[:j+1]` reassigns a local slice
// header, so the caller's slice keeps its original length with stale
// tail entries); this returns the deduplicated slice explicitly instead.
func SortAndDedupeVersions(versions []string) []string {
	flexver.VersionSlice(versions).Sort()
	if len(versions) == 0 {
		return versions
	}
	j := 0
	for i := 1; i < len(versions); i++ {
		if versions[i] != versions[j] {
			j++
			versions[j] = versions[i]
		}
	}
	return versions[:j+1]
}
