package minio

import (
	"path"
	"strings"
)

// normalize cleans name into a slash-separated key fragment with no
// leading or trailing slash. The root is ".".
func normalize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.Trim(path.Clean("/"+name), "/")
	if name == "" {
		return "."
	}
	return name
}

func normalizePrefix(prefix string) string {
	if p := normalize(prefix); p != "." {
		return p
	}
	return ""
}

// joinKey prefixes a cleaned name. The root maps to the prefix itself.
func joinKey(prefix, name string) string {
	name = normalize(name)
	switch {
	case name == ".":
		return prefix
	case prefix == "":
		return name
	default:
		return prefix + "/" + name
	}
}

// dirKey returns key as a listing prefix ending in "/". The bucket root
// stays empty.
func dirKey(key string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return key
	}
	return key + "/"
}
