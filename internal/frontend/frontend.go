// Package frontend binds the requester adapters to the session bus. It
// claims the backend's well-known name, exports the enabled
// org.freedesktop.impl.portal interfaces and one Request object per live
// portal request whose Close() feeds the cancellation path.
package frontend

import (
	"context"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/config"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/requester"
)

const (
	portalPath = dbus.ObjectPath("/org/freedesktop/portal/desktop")

	accountIface     = "org.freedesktop.impl.portal.Account"
	appChooserIface  = "org.freedesktop.impl.portal.AppChooser"
	fileChooserIface = "org.freedesktop.impl.portal.FileChooser"
	wallpaperIface   = "org.freedesktop.impl.portal.Wallpaper"
	requestIface     = "org.freedesktop.impl.portal.Request"

	// Portal response codes delivered to the calling application.
	responseSuccess   = uint32(0)
	responseCancelled = uint32(1)
	responseOther     = uint32(2)
)

// Adapters bundles the requester adapters the frontend exposes. A nil
// adapter leaves the matching interface unexported.
type Adapters struct {
	Account     *requester.Account
	AppChooser  *requester.AppChooser
	FileChooser *requester.FileChooser
	Wallpaper   *requester.Wallpaper
}

// Frontend is the D-Bus side of the backend.
type Frontend struct {
	cfg      *config.Config
	adapters Adapters
	log      *zap.Logger
	conn     *dbus.Conn
}

// New creates a frontend serving the given adapters.
func New(cfg *config.Config, adapters Adapters, log *zap.Logger) *Frontend {
	return &Frontend{cfg: cfg, adapters: adapters, log: log.Named("frontend")}
}

// Run connects to the session bus, exports the portal objects, claims the
// configured name and serves until ctx is cancelled.
func (f *Frontend) Run(ctx context.Context) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	f.conn = conn
	defer conn.Close()

	if err := f.export(); err != nil {
		return err
	}

	reply, err := conn.RequestName(f.cfg.BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request name %s: %w", f.cfg.BusName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("name %s already taken", f.cfg.BusName)
	}
	f.log.Info("portal frontend running", zap.String("bus_name", f.cfg.BusName))

	<-ctx.Done()
	return ctx.Err()
}

func (f *Frontend) export() error {
	if f.adapters.Account != nil {
		f.log.Debug("exporting interface", zap.String("interface", accountIface))
		if err := f.conn.Export(&accountPortal{f}, portalPath, accountIface); err != nil {
			return fmt.Errorf("failed to export %s: %w", accountIface, err)
		}
	}
	if f.adapters.AppChooser != nil {
		f.log.Debug("exporting interface", zap.String("interface", appChooserIface))
		if err := f.conn.Export(&appChooserPortal{f}, portalPath, appChooserIface); err != nil {
			return fmt.Errorf("failed to export %s: %w", appChooserIface, err)
		}
	}
	if f.adapters.FileChooser != nil {
		f.log.Debug("exporting interface", zap.String("interface", fileChooserIface))
		if err := f.conn.Export(&fileChooserPortal{f}, portalPath, fileChooserIface); err != nil {
			return fmt.Errorf("failed to export %s: %w", fileChooserIface, err)
		}
	}
	if f.adapters.Wallpaper != nil {
		f.log.Debug("exporting interface", zap.String("interface", wallpaperIface))
		if err := f.conn.Export(&wallpaperPortal{f}, portalPath, wallpaperIface); err != nil {
			return fmt.Errorf("failed to export %s: %w", wallpaperIface, err)
		}
	}
	return nil
}

// tokenFromHandle derives the handle token from the request object path the
// protocol layer chose. Handle paths end in the caller-supplied token; a
// path without one gets a synthetic token so the bookkeeping still works.
func tokenFromHandle(handle dbus.ObjectPath) requester.HandleToken {
	s := string(handle)
	if i := strings.LastIndex(s, "/"); i >= 0 && i+1 < len(s) {
		return requester.HandleToken(s[i+1:])
	}
	return requester.HandleToken(uuid.NewString())
}

// requestObject is the per-request D-Bus object; the portal frontend calls
// Close on it when the application loses interest.
type requestObject struct {
	close func()
}

func (r *requestObject) Close() *dbus.Error {
	r.close()
	return nil
}

// exportRequest publishes the Request object for handle; the returned
// function unexports it again once the request has settled.
func (f *Frontend) exportRequest(handle dbus.ObjectPath, cancel func()) func() {
	if !handle.IsValid() {
		return func() {}
	}
	if err := f.conn.Export(&requestObject{close: cancel}, handle, requestIface); err != nil {
		f.log.Error("failed to export request object", zap.String("handle", string(handle)), zap.Error(err))
		return func() {}
	}
	return func() {
		if err := f.conn.Export(nil, handle, requestIface); err != nil {
			f.log.Warn("failed to unexport request object", zap.String("handle", string(handle)), zap.Error(err))
		}
	}
}

// responseCode maps the portal error taxonomy to the wire response codes.
func responseCode(err error) uint32 {
	if err == nil {
		return responseSuccess
	}
	if message.KindOf(err) == message.FailureCancelled {
		return responseCancelled
	}
	return responseOther
}
