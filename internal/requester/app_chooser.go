package requester

import (
	"context"

	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// AppChooser adapts the org.freedesktop.impl.portal.AppChooser interface.
type AppChooser struct {
	*Requester
}

// NewAppChooser creates the AppChooser adapter.
func NewAppChooser(send chan<- message.Message, closed <-chan struct{}, log *zap.Logger) *AppChooser {
	return &AppChooser{Requester: New("app-chooser", send, closed, log)}
}

// ChooseApplication asks the user to pick one of choices.
func (c *AppChooser) ChooseApplication(ctx context.Context, token HandleToken, app message.Application, choices []message.DesktopID, opts message.ChooserOptions) (message.Choice, error) {
	reply := message.NewReply[message.Choice]()
	payload := &message.AppChooserChoose{
		App:     app,
		Choices: choices,
		Options: opts,
		Reply:   reply,
	}
	return NewRequest(ctx, c.Requester, token, payload, reply)
}

// UpdateChoices replaces the choices of the dialog already open for token.
// The dialog stays open afterwards, so this follows the update path: no new
// responder, no Done.
func (c *AppChooser) UpdateChoices(ctx context.Context, token HandleToken, choices []message.DesktopID) error {
	reply := message.NewReply[message.Unit]()
	payload := &message.AppChooserUpdateChoices{
		Choices: choices,
		Reply:   reply,
	}
	_, err := UpdateRequest(ctx, c.Requester, token, payload, reply)
	return err
}
