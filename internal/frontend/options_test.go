package frontend

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/requester"
)

func TestVardict_ScalarAccess(t *testing.T) {
	d := vardict{
		"reason": dbus.MakeVariant("verify your identity"),
		"modal":  dbus.MakeVariant(true),
		"count":  dbus.MakeVariant(uint32(3)),
	}

	assert.Equal(t, "verify your identity", d.string("reason"))
	assert.True(t, d.bool("modal"))

	// Missing keys and type mismatches yield zero values, never panics.
	assert.Equal(t, "", d.string("missing"))
	assert.False(t, d.bool("missing"))
	assert.Equal(t, "", d.string("modal"))
	assert.False(t, d.bool("count"))
}

func TestVardict_Bytestring(t *testing.T) {
	d := vardict{
		"current_folder": dbus.MakeVariant([]byte("/home/mo/Documents\x00")),
		"plain":          dbus.MakeVariant([]byte("/tmp")),
		"files": dbus.MakeVariant([][]byte{
			[]byte("/home/mo/a.txt\x00"),
			[]byte("/home/mo/b.txt\x00"),
		}),
	}

	assert.Equal(t, "/home/mo/Documents", d.bytestring("current_folder"))
	assert.Equal(t, "/tmp", d.bytestring("plain"))
	assert.Equal(t, []string{"/home/mo/a.txt", "/home/mo/b.txt"}, d.bytestrings("files"))
	assert.Equal(t, "", d.bytestring("missing"))
	assert.Nil(t, d.bytestrings("missing"))
}

func TestWireFilter_ToFilter(t *testing.T) {
	wf := wireFilter{Name: "Images"}
	wf.Entries = []struct {
		Type    uint32
		Pattern string
	}{
		{filterGlob, "*.png"},
		{filterGlob, "*.jpg"},
		{filterMime, "image/webp"},
	}

	filter := wf.toFilter()
	assert.Equal(t, "Images", filter.Name)
	assert.Equal(t, []string{"*.png", "*.jpg"}, filter.Patterns)
	assert.Equal(t, []string{"image/webp"}, filter.MimeTypes)
}

func TestDecodeOpenFileOptions(t *testing.T) {
	d := vardict{
		"accept_label": dbus.MakeVariant("_Open"),
		"multiple":     dbus.MakeVariant(true),
		"directory":    dbus.MakeVariant(false),
	}

	opts := decodeOpenFileOptions(d)
	assert.Equal(t, "_Open", opts.AcceptLabel)
	assert.True(t, opts.Multiple)
	assert.False(t, opts.Directory)
	assert.Nil(t, opts.Filters)
	assert.Nil(t, opts.CurrentFilter)
}

func TestDecodeChooserOptions(t *testing.T) {
	d := vardict{
		"last_choice":  dbus.MakeVariant("org.gnome.Loupe.desktop"),
		"modal":        dbus.MakeVariant(true),
		"content_type": dbus.MakeVariant("image/png"),
		"uri":          dbus.MakeVariant("file:///home/mo/cat.png"),
	}

	opts := decodeChooserOptions(d)
	assert.Equal(t, message.DesktopID("org.gnome.Loupe.desktop"), opts.LastChoice)
	assert.True(t, opts.Modal)
	assert.Equal(t, "image/png", opts.ContentType)
	assert.Equal(t, "file:///home/mo/cat.png", opts.URI)
}

func TestDecodeSaveFilesOptions(t *testing.T) {
	d := vardict{
		"current_folder": dbus.MakeVariant([]byte("/home/mo\x00")),
		"files": dbus.MakeVariant([][]byte{
			[]byte("report.pdf\x00"),
		}),
	}

	opts := decodeSaveFilesOptions(d)
	assert.Equal(t, "/home/mo", opts.CurrentFolder)
	assert.Equal(t, []string{"report.pdf"}, opts.Files)
}

func TestDecodeWallpaperOptions(t *testing.T) {
	t.Run("explicit target", func(t *testing.T) {
		d := vardict{
			"show-preview": dbus.MakeVariant(true),
			"set-on":       dbus.MakeVariant("lockscreen"),
		}
		opts := decodeWallpaperOptions(d)
		assert.True(t, opts.ShowPreview)
		assert.Equal(t, message.WallpaperLockscreen, opts.SetOn)
	})

	t.Run("defaults to both", func(t *testing.T) {
		opts := decodeWallpaperOptions(vardict{})
		assert.Equal(t, message.WallpaperBoth, opts.SetOn)
	})
}

func TestTokenFromHandle(t *testing.T) {
	token := tokenFromHandle("/org/freedesktop/portal/desktop/request/1_23/t42")
	assert.Equal(t, requester.HandleToken("t42"), token)

	// Degenerate handles still yield a usable, unique token.
	fallback := tokenFromHandle("")
	require.NotEmpty(t, fallback)
	assert.NotEqual(t, fallback, tokenFromHandle(""))
}

func TestResponseCode(t *testing.T) {
	assert.Equal(t, responseSuccess, responseCode(nil))
	assert.Equal(t, responseCancelled, responseCode(message.NewCancelled("user closed the dialog")))
	assert.Equal(t, responseOther, responseCode(message.NewFailed("dialog failed")))
	assert.Equal(t, responseOther, responseCode(assert.AnError))
}
