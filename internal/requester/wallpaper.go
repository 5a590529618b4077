package requester

import (
	"context"

	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// Wallpaper adapts the org.freedesktop.impl.portal.Wallpaper interface.
type Wallpaper struct {
	*Requester
}

// NewWallpaper creates the Wallpaper adapter.
func NewWallpaper(send chan<- message.Message, closed <-chan struct{}, log *zap.Logger) *Wallpaper {
	return &Wallpaper{Requester: New("wallpaper", send, closed, log)}
}

// SetWallpaperURI asks the user to confirm applying uri as wallpaper.
func (w *Wallpaper) SetWallpaperURI(ctx context.Context, token HandleToken, app message.Application, uri string, opts message.WallpaperOptions) error {
	reply := message.NewReply[message.Unit]()
	payload := &message.WallpaperSetURI{
		App:     app,
		URI:     uri,
		Options: opts,
		Reply:   reply,
	}
	_, err := NewRequest(ctx, w.Requester, token, payload, reply)
	return err
}
