package responder

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// AppChooser presents the application-chooser dialog. Unlike the other
// responders it stays registered across follow-up payloads: the dispatch
// loop routes AppChooserUpdateChoices to it while the dialog is open.
type AppChooser struct {
	log     *zap.Logger
	payload *message.AppChooserChoose
	program *tea.Program
}

// NewAppChooser creates an app chooser responder.
func NewAppChooser(log *zap.Logger) *AppChooser {
	return &AppChooser{log: log.Named("app-chooser-dialog")}
}

// choicesMsg swaps the dialog's choices in place.
type choicesMsg []message.DesktopID

// Respond starts the dialog for a choose payload, or forwards an update
// payload to the open dialog.
func (c *AppChooser) Respond(payload message.Payload) {
	switch p := payload.(type) {
	case *message.AppChooserChoose:
		c.respondChoose(p)
	case *message.AppChooserUpdateChoices:
		c.respondUpdate(p)
	default:
		c.log.Error("unexpected payload", zap.String("kind", string(payload.Kind())))
		if err := payload.Reject(message.NewInvalidArgument("not an app chooser request")); err != nil {
			c.log.Error("could not reject payload", zap.Error(err))
		}
	}
}

func (c *AppChooser) respondChoose(p *message.AppChooserChoose) {
	if c.payload != nil {
		// One interactive request per identity; a second choose payload
		// for the same ID is a protocol violation.
		c.log.Error("chooser already open")
		_ = p.Reply.Reject(message.NewFailed("chooser already open"))
		return
	}
	c.payload = p

	c.program = tea.NewProgram(newAppChooserModel(p), tea.WithAltScreen())
	go func() {
		if _, err := c.program.Run(); err != nil {
			c.log.Error("app chooser dialog failed", zap.Error(err))
			_ = p.Reply.Reject(message.NewFailed("dialog failed"))
			return
		}
		_ = p.Reply.Reject(message.NewCancelled("dialog closed"))
	}()
}

func (c *AppChooser) respondUpdate(p *message.AppChooserUpdateChoices) {
	if c.program == nil {
		c.log.Error("update for chooser that never opened")
		_ = p.Reply.Reject(message.NewFailed("no open chooser"))
		return
	}
	c.program.Send(choicesMsg(p.Choices))
	_ = p.Reply.Resolve(message.Unit{})
}

// Cancel aborts the dialog and unblocks the awaiting requester.
func (c *AppChooser) Cancel() {
	if c.payload != nil {
		_ = c.payload.Reply.Reject(message.NewCancelled("request cancelled"))
	}
	if c.program != nil {
		c.program.Quit()
	}
}

type appItem message.DesktopID

func (i appItem) Title() string       { return string(i) }
func (i appItem) Description() string { return "" }
func (i appItem) FilterValue() string { return string(i) }

func appItems(choices []message.DesktopID) []list.Item {
	items := make([]list.Item, 0, len(choices))
	for _, c := range choices {
		items = append(items, appItem(c))
	}
	return items
}

type appChooserModel struct {
	payload *message.AppChooserChoose
	apps    list.Model
}

func newAppChooserModel(p *message.AppChooserChoose) appChooserModel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	apps := list.New(appItems(p.Choices), delegate, 60, 20)
	apps.Title = "Open With"
	apps.SetShowStatusBar(false)

	// Preselect what the user picked last time.
	if p.Options.LastChoice != "" {
		for i, c := range p.Choices {
			if c == p.Options.LastChoice {
				apps.Select(i)
				break
			}
		}
	}
	return appChooserModel{payload: p, apps: apps}
}

func (m appChooserModel) Init() tea.Cmd {
	return nil
}

func (m appChooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.apps.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case choicesMsg:
		return m, m.apps.SetItems(appItems(msg))

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.apps.SelectedItem().(appItem); ok {
				_ = m.payload.Reply.Resolve(message.Choice{ID: message.DesktopID(item)})
				return m, tea.Quit
			}
			return m, nil

		case "esc", "ctrl+c":
			_ = m.payload.Reply.Reject(message.NewCancelled("cancelled by user"))
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.apps, cmd = m.apps.Update(msg)
	return m, cmd
}

func (m appChooserModel) View() string {
	desc := requestDescription(m.payload.App.AppID, "wants to open a file.")
	if m.payload.Options.ContentType != "" {
		desc += "\n" + labelStyle.Render("Type: "+m.payload.Options.ContentType)
	}
	if m.payload.Options.Filename != "" {
		desc += "\n" + labelStyle.Render("File: "+m.payload.Options.Filename)
	}
	return dialogStyle.Render(desc + "\n\n" + m.apps.View() + "\n" + helpStyle.Render("enter choose • esc cancel"))
}
