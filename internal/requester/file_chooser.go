package requester

import (
	"context"

	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// FileChooser adapts the org.freedesktop.impl.portal.FileChooser interface.
type FileChooser struct {
	*Requester
}

// NewFileChooser creates the FileChooser adapter.
func NewFileChooser(send chan<- message.Message, closed <-chan struct{}, log *zap.Logger) *FileChooser {
	return &FileChooser{Requester: New("file-chooser", send, closed, log)}
}

// OpenFile asks the user to select one or more existing files.
func (f *FileChooser) OpenFile(ctx context.Context, token HandleToken, app message.Application, title string, opts message.OpenFileOptions) (message.SelectedFiles, error) {
	reply := message.NewReply[message.SelectedFiles]()
	payload := &message.FileChooserOpenFile{
		App:     app,
		Title:   title,
		Options: opts,
		Reply:   reply,
	}
	return NewRequest(ctx, f.Requester, token, payload, reply)
}

// SaveFile asks the user for a destination to save a single file.
func (f *FileChooser) SaveFile(ctx context.Context, token HandleToken, app message.Application, title string, opts message.SaveFileOptions) (message.SelectedFiles, error) {
	reply := message.NewReply[message.SelectedFiles]()
	payload := &message.FileChooserSaveFile{
		App:     app,
		Title:   title,
		Options: opts,
		Reply:   reply,
	}
	return NewRequest(ctx, f.Requester, token, payload, reply)
}

// SaveFiles asks the user for a folder to save a set of files into.
func (f *FileChooser) SaveFiles(ctx context.Context, token HandleToken, app message.Application, title string, opts message.SaveFilesOptions) (message.SelectedFiles, error) {
	reply := message.NewReply[message.SelectedFiles]()
	payload := &message.FileChooserSaveFiles{
		App:     app,
		Title:   title,
		Options: opts,
		Reply:   reply,
	}
	return NewRequest(ctx, f.Requester, token, payload, reply)
}
