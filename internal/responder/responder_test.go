package responder

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/config"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// The dialog models are plain state machines; the tests feed them key
// messages directly instead of running a terminal program.

func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.Msg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func keyRune(r rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func awaited[T any](t *testing.T, reply *message.Reply[T]) (T, error) {
	t.Helper()
	require.True(t, reply.Resolved(), "reply must be settled")
	return reply.Await(context.Background())
}

func TestPathToURI(t *testing.T) {
	assert.Equal(t, "file:///home/mo/cat.png", pathToURI("/home/mo/cat.png"))
	assert.Equal(t, "file:///tmp/with%20space", pathToURI("/tmp/with space"))
}

func TestStartDirectory(t *testing.T) {
	cfg := config.FileChooserConfig{StartDirectory: "/srv/media"}

	assert.Equal(t, "/home/mo", startDirectory(cfg, "/home/mo"), "the request wins")
	assert.Equal(t, "/srv/media", startDirectory(cfg, ""), "then the config")
	assert.NotEmpty(t, startDirectory(config.FileChooserConfig{}, ""))
}

func TestFilterSuffixes(t *testing.T) {
	filters := []message.FileFilter{
		{Name: "Images", Patterns: []string{"*.png", "*.jpg"}},
		{Name: "All", Patterns: []string{"*"}}, // no extension, dropped
		{Name: "Mime only", MimeTypes: []string{"text/plain"}},
	}
	assert.Equal(t, []string{".png", ".jpg"}, filterSuffixes(filters))
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable(config.DefaultConfig(), zap.NewNop())

	for _, kind := range []message.Kind{
		message.KindAccountGetUserInformation,
		message.KindAppChooserChoose,
		message.KindFileChooserOpenFile,
		message.KindFileChooserSaveFile,
		message.KindFileChooserSaveFiles,
		message.KindWallpaperSetURI,
	} {
		assert.Contains(t, table, kind)
	}
	assert.NotContains(t, table, message.KindAppChooserUpdateChoices,
		"updates are routed by request id, never by table")
}

func TestAccountModel(t *testing.T) {
	cfg := config.AccountConfig{Username: "mo", RealName: "Mo Example", ImagePath: "/home/mo/.face"}

	t.Run("enter shares the edited identity", func(t *testing.T) {
		payload := &message.AccountGetUserInformation{Reply: message.NewReply[message.UserInformation]()}
		model := newAccountModel(payload, cfg)

		_, cmd := model.Update(keyEnter())
		require.NotNil(t, cmd)

		info, err := awaited(t, payload.Reply)
		require.NoError(t, err)
		assert.Equal(t, "mo", info.ID)
		assert.Equal(t, "Mo Example", info.Name)
		assert.Equal(t, "file:///home/mo/.face", info.Image)
	})

	t.Run("esc cancels", func(t *testing.T) {
		payload := &message.AccountGetUserInformation{Reply: message.NewReply[message.UserInformation]()}
		model := newAccountModel(payload, cfg)

		model.Update(keyEsc())

		_, err := awaited(t, payload.Reply)
		assert.Equal(t, message.FailureCancelled, message.KindOf(err))
	})
}

func TestAppChooserModel(t *testing.T) {
	newPayload := func(opts message.ChooserOptions) *message.AppChooserChoose {
		return &message.AppChooserChoose{
			Choices: []message.DesktopID{"a.desktop", "b.desktop", "c.desktop"},
			Options: opts,
			Reply:   message.NewReply[message.Choice](),
		}
	}

	t.Run("enter picks the selected app", func(t *testing.T) {
		payload := newPayload(message.ChooserOptions{})
		model := newAppChooserModel(payload)

		model.Update(keyEnter())

		choice, err := awaited(t, payload.Reply)
		require.NoError(t, err)
		assert.Equal(t, message.DesktopID("a.desktop"), choice.ID)
	})

	t.Run("last choice is preselected", func(t *testing.T) {
		payload := newPayload(message.ChooserOptions{LastChoice: "b.desktop"})
		model := newAppChooserModel(payload)

		model.Update(keyEnter())

		choice, err := awaited(t, payload.Reply)
		require.NoError(t, err)
		assert.Equal(t, message.DesktopID("b.desktop"), choice.ID)
	})

	t.Run("update message swaps the choices", func(t *testing.T) {
		payload := newPayload(message.ChooserOptions{})
		model := newAppChooserModel(payload)

		updated, _ := model.Update(choicesMsg{"z.desktop"})
		updated.Update(keyEnter())

		choice, err := awaited(t, payload.Reply)
		require.NoError(t, err)
		assert.Equal(t, message.DesktopID("z.desktop"), choice.ID)
	})

	t.Run("esc cancels", func(t *testing.T) {
		payload := newPayload(message.ChooserOptions{})
		model := newAppChooserModel(payload)

		model.Update(keyEsc())

		_, err := awaited(t, payload.Reply)
		assert.Equal(t, message.FailureCancelled, message.KindOf(err))
	})
}

func TestSaveFileModel(t *testing.T) {
	newPayload := func(name string) *message.FileChooserSaveFile {
		return &message.FileChooserSaveFile{
			Options: message.SaveFileOptions{CurrentName: name},
			Reply:   message.NewReply[message.SelectedFiles](),
		}
	}

	t.Run("enter saves under the chosen folder", func(t *testing.T) {
		payload := newPayload("report.pdf")
		model := newSaveFileModel(payload, "/home/mo/Documents")

		model.Update(keyEnter())

		files, err := awaited(t, payload.Reply)
		require.NoError(t, err)
		assert.Equal(t, []string{"file:///home/mo/Documents/report.pdf"}, files.URIs)
		assert.True(t, files.Writable)
	})

	t.Run("enter with an empty name does nothing", func(t *testing.T) {
		payload := newPayload("")
		model := newSaveFileModel(payload, "/home/mo")

		model.Update(keyEnter())
		assert.False(t, payload.Reply.Resolved())
	})

	t.Run("esc cancels", func(t *testing.T) {
		payload := newPayload("report.pdf")
		model := newSaveFileModel(payload, "/home/mo")

		model.Update(keyEsc())

		_, err := awaited(t, payload.Reply)
		assert.Equal(t, message.FailureCancelled, message.KindOf(err))
	})
}

func TestSaveFilesModel(t *testing.T) {
	payload := &message.FileChooserSaveFiles{
		Options: message.SaveFilesOptions{Files: []string{"a.txt", "/elsewhere/b.txt"}},
		Reply:   message.NewReply[message.SelectedFiles](),
	}
	model := newSaveFilesModel(payload, "/home/mo/Downloads")

	model.Update(keyEnter())

	files, err := awaited(t, payload.Reply)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"file:///home/mo/Downloads/a.txt",
		"file:///home/mo/Downloads/b.txt",
	}, files.URIs)
	assert.True(t, files.Writable)
}

func TestWallpaperModel(t *testing.T) {
	newPayload := func() *message.WallpaperSetURI {
		return &message.WallpaperSetURI{
			URI:   "file:///home/mo/cat.png",
			Reply: message.NewReply[message.Unit](),
		}
	}

	t.Run("y applies", func(t *testing.T) {
		payload := newPayload()
		model := wallpaperModel{payload: payload}

		model.Update(keyRune('y'))

		_, err := awaited(t, payload.Reply)
		assert.NoError(t, err)
	})

	t.Run("esc cancels", func(t *testing.T) {
		payload := newPayload()
		model := wallpaperModel{payload: payload}

		model.Update(keyEsc())

		_, err := awaited(t, payload.Reply)
		assert.Equal(t, message.FailureCancelled, message.KindOf(err))
	})
}

func TestWallpaperRespond_EmptyURI(t *testing.T) {
	payload := &message.WallpaperSetURI{Reply: message.NewReply[message.Unit]()}

	w := NewWallpaper(zap.NewNop())
	w.Respond(payload)

	// No dialog opens; the request fails immediately.
	_, err := awaited(t, payload.Reply)
	assert.Equal(t, message.FailureInvalidArgument, message.KindOf(err))
}
