package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1234567, "1.18 MB"},
		{1 << 30, "1 GB"},
		{5 << 40, "5120 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.in), "bytes=%d", tt.in)
	}
}

func TestCategoryMatches(t *testing.T) {
	tests := []struct {
		fileType string
		want     FileCategory
	}{
		{"image/png", CategoryImages},
		{"JPG", CategoryImages},
		{"application/pdf", CategoryDocuments},
		{"text/plain; txt", CategoryDocuments},
		{"video/mp4", CategoryVideos},
		{"mov", CategoryVideos},
		{"application/zip", CategoryOthers},
	}
	all := []FileCategory{CategoryImages, CategoryDocuments, CategoryVideos, CategoryOthers}
	for _, tt := range tests {
		t.Run(tt.fileType, func(t *testing.T) {
			assert.True(t, CategoryAll.Matches(tt.fileType))
			for _, c := range all {
				assert.Equal(t, c == tt.want, c.Matches(tt.fileType), "category %s", c)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	c, err = ParseCategory(" Images ")
	require.NoError(t, err)
	assert.Equal(t, CategoryImages, c)

	_, err = ParseCategory("music")
	require.Error(t, err)
}

func TestFilterFiles(t *testing.T) {
	files := []FileRecord{
		{ID: "1", OriginalFileName: "Holiday.JPG", FileType: "image/jpeg"},
		{ID: "2", OriginalFileName: "report.pdf", FileType: "application/pdf"},
		{ID: "3", OriginalFileName: "holiday-clip.mp4", FileType: "video/mp4"},
		{ID: "4", OriginalFileName: "backup.zip", FileType: "application/zip"},
	}

	ids := func(fs []FileRecord) []string {
		out := []string{}
		for _, f := range fs {
			out = append(out, f.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(FilterFiles(files, "", CategoryAll)))
	assert.Equal(t, []string{"1", "3"}, ids(FilterFiles(files, "holiday", CategoryAll)))
	assert.Equal(t, []string{"3"}, ids(FilterFiles(files, "HOLIDAY", CategoryVideos)))
	assert.Equal(t, []string{"4"}, ids(FilterFiles(files, "", CategoryOthers)))
	assert.Empty(t, FilterFiles(files, "nothing", CategoryAll))
	assert.Len(t, files, 4, "input must not be modified")
}

func TestViewer(t *testing.T) {
	tests := []struct {
		rec  FileRecord
		want ViewerKind
	}{
		{FileRecord{FileType: "image/webp", OriginalFileName: "a"}, ViewerImage},
		{FileRecord{FileType: "application/octet-stream", OriginalFileName: "clip.mkv"}, ViewerVideo},
		{FileRecord{FileType: "application/pdf", OriginalFileName: "doc.pdf"}, ViewerPDF},
		{FileRecord{FileType: "text/plain", OriginalFileName: "notes.md"}, ViewerText},
		{FileRecord{FileType: "application/zip", OriginalFileName: "x.zip"}, ViewerOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rec.Viewer(), tt.rec.OriginalFileName)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "An Tran", UserProfile{Email: "a@b.c", FirstName: "An", LastName: "Tran"}.DisplayName())
	assert.Equal(t, "An", UserProfile{Email: "a@b.c", FirstName: "An"}.DisplayName())
	assert.Equal(t, "a@b.c", UserProfile{Email: "a@b.c"}.DisplayName())
}

func TestResultConstructors(t *testing.T) {
	ok := Ok([]FileRecord{{ID: "1"}}, "done")
	want := Result[[]FileRecord]{Success: true, Data: []FileRecord{{ID: "1"}}, Message: "done"}
	if diff := cmp.Diff(want, ok); diff != "" {
		t.Fatalf("Ok mismatch (-want +got):\n%s", diff)
	}

	fail := Fail[*FileRecord]("nope")
	assert.False(t, fail.Success)
	assert.Nil(t, fail.Data)
	assert.Equal(t, "nope", fail.Message)
}

func TestFileRecordString(t *testing.T) {
	rec := FileRecord{ID: "f1", OriginalFileName: "a.txt", FileType: "text/plain", FileSize: 2048, UploadedAt: time.Now()}
	s := rec.String()
	assert.Contains(t, s, "f1")
	assert.Contains(t, s, "2 KB")
}
