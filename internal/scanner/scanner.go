// Package scanner enumerates media files under an input directory and
// classifies them by extension.
package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// MediaKind classifies a file by extension.
type MediaKind string

const (
	KindImage   MediaKind = "image"
	KindVideo   MediaKind = "video"
	KindUnknown MediaKind = "unknown"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".webp": true, ".tiff": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".flv": true,
	".wmv": true, ".webm": true, ".m4v": true, ".mpeg": true, ".mpg": true,
}

// Entry is one discovered media file.
type Entry struct {
	Path string
	Kind MediaKind
}

// Classify maps a path to its media kind by extension alone.
func Classify(path string) MediaKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExtensions[ext]:
		return KindImage
	case videoExtensions[ext]:
		return KindVideo
	default:
		return KindUnknown
	}
}

// Scan walks root and returns all image and video files in sorted path
// order, so batch runs over the same folder always process files in the
// same sequence. Files with unrecognized extensions are left out.
func Scan(root string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		kind := Classify(path)
		if kind == KindUnknown {
			return nil
		}
		entries = append(entries, Entry{Path: path, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
