package responder

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// Wallpaper presents the set-wallpaper confirmation dialog.
type Wallpaper struct {
	log     *zap.Logger
	payload *message.WallpaperSetURI
	program *tea.Program
}

// NewWallpaper creates a wallpaper responder.
func NewWallpaper(log *zap.Logger) *Wallpaper {
	return &Wallpaper{log: log.Named("wallpaper-dialog")}
}

// Respond starts the confirmation dialog.
func (w *Wallpaper) Respond(payload message.Payload) {
	p, ok := payload.(*message.WallpaperSetURI)
	if !ok {
		w.log.Error("unexpected payload", zap.String("kind", string(payload.Kind())))
		if err := payload.Reject(message.NewInvalidArgument("not a wallpaper request")); err != nil {
			w.log.Error("could not reject payload", zap.Error(err))
		}
		return
	}
	if p.URI == "" {
		_ = p.Reply.Reject(message.NewInvalidArgument("empty wallpaper uri"))
		return
	}
	w.payload = p

	w.program = tea.NewProgram(wallpaperModel{payload: p}, tea.WithAltScreen())
	go func() {
		if _, err := w.program.Run(); err != nil {
			w.log.Error("wallpaper dialog failed", zap.Error(err))
			_ = p.Reply.Reject(message.NewFailed("dialog failed"))
			return
		}
		_ = p.Reply.Reject(message.NewCancelled("dialog closed"))
	}()
}

// Cancel aborts the dialog and unblocks the awaiting requester.
func (w *Wallpaper) Cancel() {
	if w.payload != nil {
		_ = w.payload.Reply.Reject(message.NewCancelled("request cancelled"))
	}
	if w.program != nil {
		w.program.Quit()
	}
}

type wallpaperModel struct {
	payload *message.WallpaperSetURI
}

func (m wallpaperModel) Init() tea.Cmd {
	return nil
}

func (m wallpaperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "y":
			_ = m.payload.Reply.Resolve(message.Unit{})
			return m, tea.Quit
		case "esc", "n", "ctrl+c":
			_ = m.payload.Reply.Reject(message.NewCancelled("cancelled by user"))
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m wallpaperModel) View() string {
	target := m.payload.Options.SetOn
	if target == "" {
		target = message.WallpaperBoth
	}
	return dialogStyle.Render(
		titleStyle.Render("Set Wallpaper") + "\n" +
			requestDescription(m.payload.App.AppID, "wants to change the wallpaper.") + "\n\n" +
			labelStyle.Render("Image:  ") + valueStyle.Render(m.payload.URI) + "\n" +
			labelStyle.Render("Set on: ") + valueStyle.Render(string(target)) + "\n" +
			helpStyle.Render("enter apply • esc cancel"))
}
