package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FileRecord is the server's description of one stored file.
type FileRecord struct {
	ID               string    `json:"id"`
	OriginalFileName string    `json:"originalFileName"`
	FileType         string    `json:"fileType"`
	FileSize         int64     `json:"fileSize"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// FileContent is a downloaded or previewed file body.
type FileContent struct {
	FileName    string
	ContentType string
	Data        []byte
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders bytes with a 1024 base and at most two decimals,
// e.g. 1536 -> "1.5 KB". Sizes past GB stay in GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := 0
	for n := bytes; n >= 1024 && i < len(sizeUnits)-1; n /= 1024 {
		i++
	}
	v := float64(bytes) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// String is the one-line listing form used by the terminal client.
func (f FileRecord) String() string {
	return fmt.Sprintf("%s  %-30s  %10s  %-24s  %s",
		f.ID, f.OriginalFileName, FormatFileSize(f.FileSize), f.FileType,
		f.UploadedAt.Local().Format("2006-01-02 15:04"))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
