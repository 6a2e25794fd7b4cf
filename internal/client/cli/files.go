package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/filex"
)

const maxTextPreview = 4 << 10

func (a *App) usage(text string) {
	a.notify(false, "usage: "+text, "")
}

func (a *App) printFiles(files []models.FileRecord) {
	if len(files) == 0 {
		a.notify(true, "No files", "")
		return
	}
	for _, f := range files {
		fmt.Fprintln(a.out, f)
	}
	a.notify(true, fmt.Sprintf("%d file(s)", len(files)), "")
}

// List shows the user's files, optionally narrowed by a category (first
// argument, if it names one) and a name query (the rest).
func (a *App) List(ctx context.Context, args []string) {
	category := models.CategoryAll
	if len(args) > 0 {
		if c, err := models.ParseCategory(args[0]); err == nil {
			category = c
			args = args[1:]
		}
	}

	res := a.files.MyFiles(ctx)
	if !res.Success {
		a.notify(false, res.Message, "")
		return
	}
	a.printFiles(models.FilterFiles(res.Data, strings.Join(args, " "), category))
}

func (a *App) ListByType(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.usage("type <fileType>")
		return
	}
	res := a.files.MyFilesByType(ctx, args[0])
	if !res.Success {
		a.notify(false, res.Message, "")
		return
	}
	a.printFiles(res.Data)
}

func (a *App) Upload(ctx context.Context, args []string) {
	if len(args) == 0 {
		a.usage("upload <path> [name]")
		return
	}
	name := strings.Join(args[1:], " ")

	res := a.files.UploadFile(ctx, args[0], name)
	if res.Success {
		fmt.Fprintln(a.out, res.Data)
	}
	a.notify(res.Success, res.Message, "File uploaded")
}

func (a *App) Info(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.usage("info <id>")
		return
	}
	res := a.files.FileInfo(ctx, args[0])
	if !res.Success {
		a.notify(false, res.Message, "")
		return
	}
	f := res.Data
	fmt.Fprintf(a.out, "ID:       %s\nName:     %s\nType:     %s\nSize:     %s\nUploaded: %s\n",
		f.ID, f.OriginalFileName, f.FileType, models.FormatFileSize(f.FileSize),
		f.UploadedAt.Local().Format("2006-01-02 15:04:05"))
	a.notify(true, string(f.Viewer()), "")
}

func (a *App) Rename(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.usage("rename <id>")
		return
	}
	name, ok := a.ask("New file name")
	if !ok {
		return
	}
	res := a.files.RenameFile(ctx, args[0], name)
	a.notify(res.Success, res.Message, "File renamed")
}

func (a *App) Delete(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.usage("delete <id>")
		return
	}
	if !Confirm(a.reader, fmt.Sprintf("Delete file %s?", args[0]), a.out) {
		a.notify(true, "Cancelled", "")
		return
	}
	res := a.files.DeleteFile(ctx, args[0])
	a.notify(res.Success, res.Message, "File deleted")
}

// Download saves a file. dest may be a directory (default: the working
// directory) or a file path.
func (a *App) Download(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		a.usage("download <id> [dest]")
		return
	}
	id, dest := args[0], "."
	if len(args) == 2 {
		dest = args[1]
	}

	res := a.files.DownloadFile(ctx, id)
	if !res.Success {
		a.notify(false, res.Message, "")
		return
	}

	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		name := res.Data.FileName
		if name == "" {
			name = id
		}
		dest = filepath.Join(dest, filex.SafeName(name))
	}
	if err := filex.WriteFile(dest, res.Data.Data); err != nil {
		a.log.Error(ctx, "save download failed", "path", dest, "error", err)
		a.notify(false, "Could not save the file", "")
		return
	}
	a.notify(true, fmt.Sprintf("Saved %s to %s", models.FormatFileSize(int64(len(res.Data.Data))), dest), "")
}

// Preview fetches a file into the preview cache and shows text files inline.
func (a *App) Preview(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.usage("preview <id>")
		return
	}
	info := a.files.FileInfo(ctx, args[0])
	if !info.Success {
		a.notify(false, info.Message, "")
		return
	}

	res := a.files.PreviewToCache(ctx, info.Data, a.config.CacheDir)
	if !res.Success {
		a.notify(false, res.Message, "")
		return
	}

	kind := info.Data.Viewer()
	if kind == models.ViewerText {
		data, err := os.ReadFile(res.Data)
		if err == nil {
			if len(data) > maxTextPreview {
				data = data[:maxTextPreview]
			}
			fmt.Fprintln(a.out, string(data))
		}
	}
	a.notify(true, fmt.Sprintf("%s preview cached at %s", kind, res.Data), "")
}
