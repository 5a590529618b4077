package requester

import (
	"context"

	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// Account adapts the org.freedesktop.impl.portal.Account interface.
type Account struct {
	*Requester
}

// NewAccount creates the Account adapter.
func NewAccount(send chan<- message.Message, closed <-chan struct{}, log *zap.Logger) *Account {
	return &Account{Requester: New("account", send, closed, log)}
}

// GetUserInformation asks the user to share account details with app.
func (a *Account) GetUserInformation(ctx context.Context, token HandleToken, app message.Application, opts message.UserInformationOptions) (message.UserInformation, error) {
	reply := message.NewReply[message.UserInformation]()
	payload := &message.AccountGetUserInformation{
		App:     app,
		Options: opts,
		Reply:   reply,
	}
	return NewRequest(ctx, a.Requester, token, payload, reply)
}
