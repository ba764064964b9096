package gcs

import (
	"net/url"
	"strings"
)

// ParseObjectURL extracts bucket and object from the URL shapes Cloud Storage
// and Firebase Storage hand out. ok is false for anything hosted elsewhere.
func ParseObjectURL(raw string) (bucket, object string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", false
	}

	switch {
	case u.Scheme == "gs":
		return splitBucketPath(u.Host, u.Path)
	case u.Host == "storage.googleapis.com" || u.Host == "storage.cloud.google.com":
		path := strings.TrimPrefix(u.Path, "/")
		// JSON API media links: /download/storage/v1/b/<bucket>/o/<object>
		if rest, found := strings.CutPrefix(path, "download/storage/v1/b/"); found {
			return splitAPIPath(rest)
		}
		if rest, found := strings.CutPrefix(path, "storage/v1/b/"); found {
			return splitAPIPath(rest)
		}
		bucket, object, found := strings.Cut(path, "/")
		if !found {
			return "", "", false
		}
		return nonEmpty(bucket, object)
	case strings.HasSuffix(u.Host, ".storage.googleapis.com"):
		return splitBucketPath(strings.TrimSuffix(u.Host, ".storage.googleapis.com"), u.Path)
	case u.Host == "firebasestorage.googleapis.com":
		rest, found := strings.CutPrefix(u.Path, "/v0/b/")
		if !found {
			return "", "", false
		}
		return splitAPIPath(rest)
	}
	return "", "", false
}

// splitAPIPath handles "<bucket>/o/<object>"; url.Parse already unescaped the
// object name.
func splitAPIPath(rest string) (string, string, bool) {
	bucket, object, found := strings.Cut(rest, "/o/")
	if !found {
		return "", "", false
	}
	return nonEmpty(bucket, object)
}

func splitBucketPath(bucket, path string) (string, string, bool) {
	return nonEmpty(bucket, strings.TrimPrefix(path, "/"))
}

func nonEmpty(bucket, object string) (string, string, bool) {
	if bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}
