package services

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/filex"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
)

const (
	msgUploadFailed   = "Upload failed"
	msgReadFailed     = "Could not read the file"
	msgListFailed     = "Could not load the file list"
	msgDownloadFailed = "Download failed"
	msgPreviewFailed  = "Preview failed"
	msgDeleteFailed   = "Delete failed"
	msgInfoFailed     = "Could not load file info"
	msgRenameFailed   = "Rename failed"
	msgCacheFailed    = "Could not cache the preview"
)

// FileService manages the user's stored files. Every call relies on the
// bearer token attached by the API client.
type FileService struct {
	api API
	log logging.Logger
}

func NewFileService(api API, log logging.Logger) *FileService {
	return &FileService{api: api, log: log.With("service", "file")}
}

// UploadFile sends the file at localPath. An empty fileName defaults to the
// base name of the path.
func (s *FileService) UploadFile(ctx context.Context, localPath, fileName string) models.Result[models.FileRecord] {
	if err := required(localPath); err != nil {
		return models.Fail[models.FileRecord](err.Error())
	}
	if strings.TrimSpace(fileName) == "" {
		fileName = filepath.Base(localPath)
	}

	f, err := os.Open(localPath)
	if err != nil {
		s.log.Warn(ctx, "open upload source failed", "path", localPath, "error", err)
		return models.Fail[models.FileRecord](msgReadFailed)
	}
	defer f.Close()

	env, err := s.api.Upload(ctx, "/files/upload", "file", fileName, f)
	return fromEnvelope[models.FileRecord](ctx, s.log, "upload", msgUploadFailed, env, err)
}

func (s *FileService) MyFiles(ctx context.Context) models.Result[[]models.FileRecord] {
	env, err := s.api.DoJSON(ctx, http.MethodGet, "/files/my-files", nil, nil)
	return fromEnvelope[[]models.FileRecord](ctx, s.log, "list files", msgListFailed, env, err)
}

// MyFilesByType lists files whose server-side type matches fileType.
func (s *FileService) MyFilesByType(ctx context.Context, fileType string) models.Result[[]models.FileRecord] {
	if err := required(fileType); err != nil {
		return models.Fail[[]models.FileRecord](err.Error())
	}
	env, err := s.api.DoJSON(ctx, http.MethodGet, "/files/my-files/"+url.PathEscape(fileType), nil, nil)
	return fromEnvelope[[]models.FileRecord](ctx, s.log, "list files by type", msgListFailed, env, err)
}

func (s *FileService) DownloadFile(ctx context.Context, id string) models.Result[*models.FileContent] {
	return s.fetch(ctx, "/files/download/", id, "download", msgDownloadFailed)
}

func (s *FileService) PreviewFile(ctx context.Context, id string) models.Result[*models.FileContent] {
	return s.fetch(ctx, "/files/preview/", id, "preview", msgPreviewFailed)
}

func (s *FileService) fetch(ctx context.Context, prefix, id, op, fallback string) models.Result[*models.FileContent] {
	if strings.TrimSpace(id) == "" {
		return models.Fail[*models.FileContent](ErrEmptyFileID.Error())
	}
	content, err := s.api.Download(ctx, prefix+url.PathEscape(id))
	if err != nil {
		return failure[*models.FileContent](ctx, s.log, op, fallback, err)
	}
	return models.Ok(content, "")
}

func (s *FileService) DeleteFile(ctx context.Context, id string) models.Result[models.Empty] {
	if strings.TrimSpace(id) == "" {
		return models.Fail[models.Empty](ErrEmptyFileID.Error())
	}
	env, err := s.api.DoJSON(ctx, http.MethodDelete, "/files/"+url.PathEscape(id), nil, nil)
	return fromEnvelope[models.Empty](ctx, s.log, "delete", msgDeleteFailed, env, err)
}

func (s *FileService) FileInfo(ctx context.Context, id string) models.Result[models.FileRecord] {
	if strings.TrimSpace(id) == "" {
		return models.Fail[models.FileRecord](ErrEmptyFileID.Error())
	}
	env, err := s.api.DoJSON(ctx, http.MethodGet, "/files/info/"+url.PathEscape(id), nil, nil)
	return fromEnvelope[models.FileRecord](ctx, s.log, "file info", msgInfoFailed, env, err)
}

// RenameFile changes the display name of a file. A blank name or id fails
// without contacting the server.
func (s *FileService) RenameFile(ctx context.Context, id, newName string) models.Result[models.FileRecord] {
	newName = strings.TrimSpace(newName)
	switch {
	case strings.TrimSpace(id) == "":
		return models.Fail[models.FileRecord](ErrEmptyFileID.Error())
	case newName == "":
		return models.Fail[models.FileRecord](ErrEmptyFileName.Error())
	}

	q := url.Values{"newFileName": {newName}}
	env, err := s.api.DoJSON(ctx, http.MethodPut, "/files/"+url.PathEscape(id)+"/rename", q, nil)
	return fromEnvelope[models.FileRecord](ctx, s.log, "rename", msgRenameFailed, env, err)
}

// PreviewToCache returns a local copy of the file's preview inside cacheDir,
// fetching it only when no cached copy exists yet.
func (s *FileService) PreviewToCache(ctx context.Context, rec models.FileRecord, cacheDir string) models.Result[string] {
	if strings.TrimSpace(rec.ID) == "" {
		return models.Fail[string](ErrEmptyFileID.Error())
	}

	dir, err := filex.EnsureDir(cacheDir)
	if err != nil {
		s.log.Error(ctx, "prepare cache dir failed", "dir", cacheDir, "error", err)
		return models.Fail[string](msgCacheFailed)
	}
	path := filepath.Join(dir, filex.SafeName(rec.ID)+"-"+filex.SafeName(rec.OriginalFileName))
	if filex.Exists(path) {
		s.log.Debug(ctx, "preview cache hit", "path", path)
		return models.Ok(path, "")
	}

	res := s.PreviewFile(ctx, rec.ID)
	if !res.Success {
		return models.Fail[string](res.Message)
	}
	if err := filex.WriteFile(path, res.Data.Data); err != nil {
		s.log.Error(ctx, "write preview cache failed", "path", path, "error", err)
		return models.Fail[string](msgCacheFailed)
	}
	return models.Ok(path, "")
}
