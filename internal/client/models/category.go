package models

import (
	"fmt"
	"strings"
)

// FileCategory groups files the way the file list filter does.
type FileCategory string

const (
	CategoryAll       FileCategory = "all"
	CategoryImages    FileCategory = "images"
	CategoryDocuments FileCategory = "documents"
	CategoryVideos    FileCategory = "videos"
	CategoryOthers    FileCategory = "others"
)

var (
	imageExts    = []string{"jpg", "jpeg", "png", "gif", "bmp"}
	documentExts = []string{"pdf", "doc", "docx", "txt", "rtf"}
	videoExts    = []string{"mp4", "avi", "mov", "wmv"}
)

// ParseCategory accepts a category name case-insensitively; "" means all.
func ParseCategory(s string) (FileCategory, error) {
	c := FileCategory(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case "":
		return CategoryAll, nil
	case CategoryAll, CategoryImages, CategoryDocuments, CategoryVideos, CategoryOthers:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// Matches reports whether a file of the given type (MIME type or extension)
// belongs to the category. Matching is by substring, so "image/png" and
// "png" are both images.
func (c FileCategory) Matches(fileType string) bool {
	t := strings.ToLower(fileType)
	isImage := strings.Contains(t, "image") || containsAny(t, imageExts)
	isVideo := strings.Contains(t, "video") || containsAny(t, videoExts)
	isDocument := containsAny(t, documentExts)

	switch c {
	case CategoryImages:
		return isImage
	case CategoryDocuments:
		return isDocument
	case CategoryVideos:
		return isVideo
	case CategoryOthers:
		return !isImage && !isVideo && !isDocument
	default:
		return true
	}
}

// FilterFiles narrows files by a case-insensitive name query and a category.
// The input slice is not modified.
func FilterFiles(files []FileRecord, query string, category FileCategory) []FileRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]FileRecord, 0, len(files))
	for _, f := range files {
		if q != "" && !strings.Contains(strings.ToLower(f.OriginalFileName), q) {
			continue
		}
		if !category.Matches(f.FileType) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// ViewerKind tells how a preview should be presented.
type ViewerKind string

const (
	ViewerImage ViewerKind = "image"
	ViewerVideo ViewerKind = "video"
	ViewerPDF   ViewerKind = "pdf"
	ViewerText  ViewerKind = "text"
	ViewerOther ViewerKind = "other"
)

// Viewer classifies a record by MIME type first and file name extension second.
func (f FileRecord) Viewer() ViewerKind {
	t := strings.ToLower(f.FileType)
	name := strings.ToLower(f.OriginalFileName)

	switch {
	case strings.Contains(t, "image") || containsAny(name, []string{"jpg", "jpeg", "png", "gif", "bmp", "webp"}):
		return ViewerImage
	case strings.Contains(t, "video") || containsAny(name, []string{"mp4", "avi", "mov", "wmv", "mkv"}):
		return ViewerVideo
	case strings.Contains(name, "pdf"):
		return ViewerPDF
	case containsAny(name, []string{"txt", "md", "json", "xml", "csv"}):
		return ViewerText
	default:
		return ViewerOther
	}
}
