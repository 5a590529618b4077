package frontend

import (
	"github.com/godbus/dbus/v5"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// vardict is the a{sv} options dictionary every portal method carries.
type vardict map[string]dbus.Variant

func (d vardict) string(key string) string {
	if v, ok := d[key]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

func (d vardict) bool(key string) bool {
	if v, ok := d[key]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// bytestring decodes the ay values (NUL-terminated paths) the file chooser
// options use for folders and files.
func (d vardict) bytestring(key string) string {
	v, ok := d[key]
	if !ok {
		return ""
	}
	raw, ok := v.Value().([]byte)
	if !ok {
		return ""
	}
	for len(raw) > 0 && raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-1]
	}
	return string(raw)
}

func (d vardict) bytestrings(key string) []string {
	v, ok := d[key]
	if !ok {
		return nil
	}
	raw, ok := v.Value().([][]byte)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, b := range raw {
		for len(b) > 0 && b[len(b)-1] == 0 {
			b = b[:len(b)-1]
		}
		out = append(out, string(b))
	}
	return out
}

// File filters travel as a(sa(us)): a name plus (type, pattern) pairs where
// type 0 is a glob pattern and type 1 a MIME type.
const (
	filterGlob = uint32(0)
	filterMime = uint32(1)
)

type wireFilter struct {
	Name    string
	Entries []struct {
		Type    uint32
		Pattern string
	}
}

func (wf wireFilter) toFilter() message.FileFilter {
	filter := message.FileFilter{Name: wf.Name}
	for _, e := range wf.Entries {
		switch e.Type {
		case filterGlob:
			filter.Patterns = append(filter.Patterns, e.Pattern)
		case filterMime:
			filter.MimeTypes = append(filter.MimeTypes, e.Pattern)
		}
	}
	return filter
}

func (d vardict) filters(key string) []message.FileFilter {
	v, ok := d[key]
	if !ok {
		return nil
	}
	var wire []wireFilter
	if err := v.Store(&wire); err != nil {
		return nil
	}
	filters := make([]message.FileFilter, 0, len(wire))
	for _, wf := range wire {
		filters = append(filters, wf.toFilter())
	}
	return filters
}

func (d vardict) filter(key string) *message.FileFilter {
	v, ok := d[key]
	if !ok {
		return nil
	}
	var wf wireFilter
	if err := v.Store(&wf); err != nil {
		return nil
	}
	f := wf.toFilter()
	return &f
}

func decodeUserInformationOptions(options vardict) message.UserInformationOptions {
	return message.UserInformationOptions{
		Reason: options.string("reason"),
	}
}

func decodeChooserOptions(options vardict) message.ChooserOptions {
	return message.ChooserOptions{
		LastChoice:  message.DesktopID(options.string("last_choice")),
		Modal:       options.bool("modal"),
		ContentType: options.string("content_type"),
		URI:         options.string("uri"),
		Filename:    options.string("filename"),
	}
}

func decodeOpenFileOptions(options vardict) message.OpenFileOptions {
	return message.OpenFileOptions{
		AcceptLabel:   options.string("accept_label"),
		Modal:         options.bool("modal"),
		Multiple:      options.bool("multiple"),
		Directory:     options.bool("directory"),
		Filters:       options.filters("filters"),
		CurrentFilter: options.filter("current_filter"),
	}
}

func decodeSaveFileOptions(options vardict) message.SaveFileOptions {
	return message.SaveFileOptions{
		AcceptLabel:   options.string("accept_label"),
		Modal:         options.bool("modal"),
		CurrentName:   options.string("current_name"),
		CurrentFolder: options.bytestring("current_folder"),
		CurrentFile:   options.bytestring("current_file"),
		Filters:       options.filters("filters"),
		CurrentFilter: options.filter("current_filter"),
	}
}

func decodeSaveFilesOptions(options vardict) message.SaveFilesOptions {
	return message.SaveFilesOptions{
		AcceptLabel:   options.string("accept_label"),
		Modal:         options.bool("modal"),
		CurrentFolder: options.bytestring("current_folder"),
		Files:         options.bytestrings("files"),
	}
}

func decodeWallpaperOptions(options vardict) message.WallpaperOptions {
	target := message.WallpaperTarget(options.string("set-on"))
	if target == "" {
		target = message.WallpaperBoth
	}
	return message.WallpaperOptions{
		ShowPreview: options.bool("show-preview"),
		SetOn:       target,
	}
}
