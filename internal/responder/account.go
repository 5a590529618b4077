package responder

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/config"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// faceFile is the conventional profile picture location under $HOME.
const faceFile = ".face"

// Account presents the account-information dialog: it shows the identity
// that would be shared, lets the user edit the display name and either
// share or deny.
type Account struct {
	cfg     config.AccountConfig
	log     *zap.Logger
	payload *message.AccountGetUserInformation
	program *tea.Program
}

// NewAccount creates an account responder.
func NewAccount(cfg config.AccountConfig, log *zap.Logger) *Account {
	return &Account{cfg: cfg, log: log.Named("account-dialog")}
}

// Respond starts the dialog. It returns immediately; the decision arrives
// through the payload's reply.
func (a *Account) Respond(payload message.Payload) {
	p, ok := payload.(*message.AccountGetUserInformation)
	if !ok {
		a.log.Error("unexpected payload", zap.String("kind", string(payload.Kind())))
		if err := payload.Reject(message.NewInvalidArgument("not an account request")); err != nil {
			a.log.Error("could not reject payload", zap.Error(err))
		}
		return
	}
	a.payload = p

	a.program = tea.NewProgram(newAccountModel(p, a.cfg), tea.WithAltScreen())
	go func() {
		if _, err := a.program.Run(); err != nil {
			a.log.Error("account dialog failed", zap.Error(err))
			_ = p.Reply.Reject(message.NewFailed("dialog failed"))
			return
		}
		// The model settles the reply on every decision path; this only
		// fires when the dialog was torn down without one.
		_ = p.Reply.Reject(message.NewCancelled("dialog closed"))
	}()
}

// Cancel aborts the dialog and unblocks the awaiting requester.
func (a *Account) Cancel() {
	if a.payload != nil {
		_ = a.payload.Reply.Reject(message.NewCancelled("request cancelled"))
	}
	if a.program != nil {
		a.program.Quit()
	}
}

// identity is what the dialog offers to share, prefilled from config with
// the OS user database as fallback.
type identity struct {
	username string
	realName string
	image    string
}

func localIdentity(cfg config.AccountConfig) identity {
	id := identity{
		username: cfg.Username,
		realName: cfg.RealName,
		image:    cfg.ImagePath,
	}
	if u, err := user.Current(); err == nil {
		if id.username == "" {
			id.username = u.Username
		}
		if id.realName == "" {
			id.realName = u.Name
		}
		if id.image == "" {
			face := filepath.Join(u.HomeDir, faceFile)
			if _, err := os.Stat(face); err == nil {
				id.image = face
			}
		}
	}
	return id
}

type accountModel struct {
	payload *message.AccountGetUserInformation
	id      identity
	name    textinput.Model
	width   int
}

func newAccountModel(p *message.AccountGetUserInformation, cfg config.AccountConfig) accountModel {
	id := localIdentity(cfg)
	name := textinput.New()
	name.SetValue(id.realName)
	name.Focus()
	return accountModel{payload: p, id: id, name: name}
}

func (m accountModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m accountModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			info := message.UserInformation{
				ID:   m.id.username,
				Name: m.name.Value(),
			}
			if m.id.image != "" {
				info.Image = pathToURI(m.id.image)
			}
			_ = m.payload.Reply.Resolve(info)
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

func (m accountModel) View() string {
	desc := requestDescription(m.payload.App.AppID, "requests your information.")
	if m.payload.Options.Reason != "" {
		desc += "\n" + labelStyle.Render(m.payload.Options.Reason)
	}

	body := fmt.Sprintf("%s\n%s\n\n%s %s\n%s %s\n",
		titleStyle.Render("Share Details"),
		desc,
		labelStyle.Render("Username:"), valueStyle.Render(m.id.username),
		labelStyle.Render("Name:"), m.name.View(),
	)
	body += helpStyle.Render("enter share • esc cancel")
	return dialogStyle.Render(body)
}
