package core

import (
	"fmt"
	"os"
	"strings"
)

// Transform maps a configured custom-origin base into a concrete URL.
// Identity for library/asset roots; suffix-join for per-version JSON/JAR
// and asset-index sources (§4.3).
type Transform func(base string) (string, error)

// IdentityTransform returns base unchanged.
func IdentityTransform(base string) (string, error) {
	return base, nil
}

// SuffixTransform joins suffix onto base with exactly one separating slash.
func SuffixTransform(suffix string) Transform {
	return func(base string) (string, error) {
		if strings.TrimSpace(base) == "" {
			return "", fmt.Errorf("empty base for suffix %q", suffix)
		}
		return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(suffix, "/"), nil
	}
}

// BuildSourceList implements §4.3's ordering rules for a single primary URL
// (already resolved by the caller, whether from a config key or a manifest
// field) plus an optional config-driven custom mirror.
//
//  1. primary is used as given.
//  2. custom is derived from cfg[customKey] via transform, if non-blank.
//  3. customSourcesFirst flips the order when custom is present.
//
// If transform fails for the custom value, that entry is dropped with a
// warning rather than failing the whole call. The result is an error only
// when it would otherwise be empty.
func BuildSourceList(primary string, cfg ConfigView, customKey string, transform Transform) ([]string, error) {
	if transform == nil {
		transform = IdentityTransform
	}

	var custom string
	var hasCustom bool
	if raw, ok := cfg.GetNonBlank(customKey); ok {
		derived, err := transform(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to derive custom source from %s: %v\n", customKey, err)
		} else {
			custom = derived
			hasCustom = true
		}
	}

	var list []string
	if cfg.CustomSourcesFirst() && hasCustom {
		list = append(list, custom)
		if primary != "" {
			list = append(list, primary)
		}
	} else {
		if primary != "" {
			list = append(list, primary)
		}
		if hasCustom {
			list = append(list, custom)
		}
	}

	if len(list) == 0 {
		return nil, ErrNoSources
	}
	return list, nil
}

// BuildSourceListFromKey is the §4.3 "root" shape: both the primary and the
// custom value come straight from config keys, identity-transformed, used
// for the libraries and assets roots (and the version-manifest release
// index). The caller is responsible for rebasing every entry with
// RebaseAll afterwards when a per-artifact suffix is still needed.
func BuildSourceListFromKey(cfg ConfigView, primaryKey, customKey string) ([]string, error) {
	return BuildSourceList(cfg.Get(primaryKey), cfg, customKey, IdentityTransform)
}

// RebaseAll appends suffix to every URL in list, joined with exactly one
// separating slash. Used after BuildSourceListFromKey for the library and
// asset-object task shapes, where every source in the list (primary and
// custom root alike) needs the same per-artifact path appended.
func RebaseAll(list []string, suffix string) []string {
	out := make([]string, len(list))
	for i, u := range list {
		out[i] = strings.TrimRight(u, "/") + "/" + strings.TrimLeft(suffix, "/")
	}
	return out
}
