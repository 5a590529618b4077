// Package responder provides the interactive dialogs that fulfill portal
// requests: terminal dialogs built on bubbletea, one responder type per
// operation family. Each responder runs its dialog on its own goroutine so
// the dispatch loop is never blocked, and settles the request's reply
// exactly once on every exit path.
package responder

import (
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/config"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/dispatch"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// DefaultTable builds the responder selection table. Update-only kinds
// (AppChooser.UpdateChoices) have no row on purpose: they are routed to the
// responder already registered for their request ID.
func DefaultTable(cfg *config.Config, log *zap.Logger) dispatch.Table {
	return dispatch.Table{
		message.KindAccountGetUserInformation: func() dispatch.Responder {
			return NewAccount(cfg.Account, log)
		},
		message.KindAppChooserChoose: func() dispatch.Responder {
			return NewAppChooser(log)
		},
		message.KindFileChooserOpenFile: func() dispatch.Responder {
			return NewFileChooser(cfg.FileChooser, log)
		},
		message.KindFileChooserSaveFile: func() dispatch.Responder {
			return NewFileChooser(cfg.FileChooser, log)
		},
		message.KindFileChooserSaveFiles: func() dispatch.Responder {
			return NewFileChooser(cfg.FileChooser, log)
		},
		message.KindWallpaperSetURI: func() dispatch.Responder {
			return NewWallpaper(log)
		},
	}
}

// pathToURI renders an absolute filesystem path as a file:// URI.
func pathToURI(path string) string {
	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}

// startDirectory picks the directory a file dialog opens in.
func startDirectory(cfg config.FileChooserConfig, requested string) string {
	if requested != "" {
		return requested
	}
	if cfg.StartDirectory != "" {
		return cfg.StartDirectory
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return string(filepath.Separator)
}
