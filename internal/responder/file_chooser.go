package responder

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/config"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// FileChooser presents the open/save dialogs. One responder type covers all
// three FileChooser operations; the payload variant selects the mode.
type FileChooser struct {
	cfg     config.FileChooserConfig
	log     *zap.Logger
	reject  func(err error) error
	program *tea.Program
}

// NewFileChooser creates a file chooser responder.
func NewFileChooser(cfg config.FileChooserConfig, log *zap.Logger) *FileChooser {
	return &FileChooser{cfg: cfg, log: log.Named("file-chooser-dialog")}
}

// Respond starts the dialog matching the payload variant.
func (f *FileChooser) Respond(payload message.Payload) {
	var model tea.Model
	switch p := payload.(type) {
	case *message.FileChooserOpenFile:
		f.reject = p.Reply.Reject
		model = newOpenFileModel(p, startDirectory(f.cfg, ""))
	case *message.FileChooserSaveFile:
		f.reject = p.Reply.Reject
		model = newSaveFileModel(p, startDirectory(f.cfg, p.Options.CurrentFolder))
	case *message.FileChooserSaveFiles:
		f.reject = p.Reply.Reject
		model = newSaveFilesModel(p, startDirectory(f.cfg, p.Options.CurrentFolder))
	default:
		f.log.Error("unexpected payload", zap.String("kind", string(payload.Kind())))
		if err := payload.Reject(message.NewInvalidArgument("not a file chooser request")); err != nil {
			f.log.Error("could not reject payload", zap.Error(err))
		}
		return
	}

	f.program = tea.NewProgram(model, tea.WithAltScreen())
	go func() {
		if _, err := f.program.Run(); err != nil {
			f.log.Error("file chooser dialog failed", zap.Error(err))
			_ = f.reject(message.NewFailed("dialog failed"))
			return
		}
		_ = f.reject(message.NewCancelled("dialog closed"))
	}()
}

// Cancel aborts the dialog and unblocks the awaiting requester.
func (f *FileChooser) Cancel() {
	if f.reject != nil {
		_ = f.reject(message.NewCancelled("request cancelled"))
	}
	if f.program != nil {
		f.program.Quit()
	}
}

// ----- open -----

type openFileModel struct {
	payload  *message.FileChooserOpenFile
	picker   filepicker.Model
	selected []string
}

func newOpenFileModel(p *message.FileChooserOpenFile, dir string) openFileModel {
	picker := filepicker.New()
	picker.CurrentDirectory = dir
	picker.DirAllowed = p.Options.Directory
	picker.FileAllowed = !p.Options.Directory
	picker.ShowHidden = false
	picker.Height = 16
	if len(p.Options.Filters) > 0 {
		picker.AllowedTypes = filterSuffixes(p.Options.Filters)
	}
	return openFileModel{payload: p, picker: picker}
}

// filterSuffixes flattens glob-style patterns like "*.png" into the suffix
// form the file picker understands; patterns without an extension are
// dropped rather than rejecting everything.
func filterSuffixes(filters []message.FileFilter) []string {
	var suffixes []string
	for _, f := range filters {
		for _, pattern := range f.Patterns {
			if trimmed, ok := strings.CutPrefix(pattern, "*"); ok && trimmed != "" {
				suffixes = append(suffixes, trimmed)
			}
		}
	}
	return suffixes
}

func (m openFileModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m openFileModel) resolve() (tea.Model, tea.Cmd) {
	uris := make([]string, 0, len(m.selected))
	for _, path := range m.selected {
		uris = append(uris, pathToURI(path))
	}
	_ = m.payload.Reply.Resolve(message.SelectedFiles{URIs: uris})
	return m, tea.Quit
}

func (m openFileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			_ = m.payload.Reply.Reject(message.NewCancelled("cancelled by user"))
			return m, tea.Quit
		case "tab":
			// Finish a multi-selection.
			if m.payload.Options.Multiple && len(m.selected) > 0 {
				return m.resolve()
			}
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selected = append(m.selected, path)
		if !m.payload.Options.Multiple {
			return m.resolve()
		}
	}
	return m, cmd
}

func (m openFileModel) View() string {
	title := m.payload.Title
	if title == "" {
		title = "Open File"
	}
	help := "enter open • esc cancel"
	if m.payload.Options.Multiple {
		help = fmt.Sprintf("enter add (%d picked) • tab done • esc cancel", len(m.selected))
	}
	return dialogStyle.Render(
		titleStyle.Render(title) + "\n" +
			requestDescription(m.payload.App.AppID, "wants to open a file.") + "\n\n" +
			m.picker.View() + "\n" +
			helpStyle.Render(help))
}

// ----- save -----

type saveFileModel struct {
	payload *message.FileChooserSaveFile
	folder  string
	name    textinput.Model
}

func newSaveFileModel(p *message.FileChooserSaveFile, dir string) saveFileModel {
	name := textinput.New()
	name.SetValue(p.Options.CurrentName)
	name.Placeholder = "filename"
	name.Focus()
	return saveFileModel{payload: p, folder: dir, name: name}
}

func (m saveFileModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m saveFileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			name := strings.TrimSpace(m.name.Value())
			if name == "" {
				return m, nil
			}
			files := message.SelectedFiles{
				URIs:     []string{pathToURI(filepath.Join(m.folder, name))},
				Writable: true,
			}
			_ = m.payload.Reply.Resolve(files)
			return m, tea.Quit

		case "esc", "ctrl+c":
			_ = m.payload.Reply.Reject(message.NewCancelled("cancelled by user"))
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m saveFileModel) View() string {
	title := m.payload.Title
	if title == "" {
		title = "Save File"
	}
	return dialogStyle.Render(
		titleStyle.Render(title) + "\n" +
			requestDescription(m.payload.App.AppID, "wants to save a file.") + "\n\n" +
			labelStyle.Render("Folder: ") + valueStyle.Render(m.folder) + "\n" +
			labelStyle.Render("Name:   ") + m.name.View() + "\n" +
			helpStyle.Render("enter save • esc cancel"))
}

// ----- save files -----

type saveFilesModel struct {
	payload *message.FileChooserSaveFiles
	folder  string
}

func newSaveFilesModel(p *message.FileChooserSaveFiles, dir string) saveFilesModel {
	return saveFilesModel{payload: p, folder: dir}
}

func (m saveFilesModel) Init() tea.Cmd {
	return nil
}

func (m saveFilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "y":
			uris := make([]string, 0, len(m.payload.Options.Files))
			for _, name := range m.payload.Options.Files {
				uris = append(uris, pathToURI(filepath.Join(m.folder, filepath.Base(name))))
			}
			_ = m.payload.Reply.Resolve(message.SelectedFiles{URIs: uris, Writable: true})
			return m, tea.Quit

		case "esc", "n", "ctrl+c":
			_ = m.payload.Reply.Reject(message.NewCancelled("cancelled by user"))
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m saveFilesModel) View() string {
	title := m.payload.Title
	if title == "" {
		title = "Save Files"
	}
	var names strings.Builder
	for _, name := range m.payload.Options.Files {
		names.WriteString("  " + valueStyle.Render(filepath.Base(name)) + "\n")
	}
	return dialogStyle.Render(
		titleStyle.Render(title) + "\n" +
			requestDescription(m.payload.App.AppID, "wants to save these files to "+m.folder+":") + "\n\n" +
			names.String() + "\n" +
			helpStyle.Render("enter save • esc cancel"))
}
