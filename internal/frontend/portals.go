package frontend

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// Every portal method follows the same shape: derive the handle token,
// publish the Request object so Close() can cancel, run the blocking
// requester call, and translate the outcome to (response code, results).
// The calls arrive on godbus worker goroutines, so any number of them may
// be suspended in the mediation layer concurrently.

type accountPortal struct {
	f *Frontend
}

func (p *accountPortal) GetUserInformation(handle dbus.ObjectPath, appID, parentWindow string, options vardict) (uint32, vardict, *dbus.Error) {
	token := tokenFromHandle(handle)
	unexport := p.f.exportRequest(handle, func() { p.f.adapters.Account.NotifyCancel(token) })
	defer unexport()

	app := message.Application{AppID: appID, WindowIdentifier: parentWindow}
	info, err := p.f.adapters.Account.GetUserInformation(context.Background(), token, app, decodeUserInformationOptions(options))

	results := vardict{}
	if err == nil {
		results["id"] = dbus.MakeVariant(info.ID)
		results["name"] = dbus.MakeVariant(info.Name)
		results["image"] = dbus.MakeVariant(info.Image)
	}
	return responseCode(err), results, nil
}

type appChooserPortal struct {
	f *Frontend
}

func (p *appChooserPortal) ChooseApplication(handle dbus.ObjectPath, appID, parentWindow string, choices []string, options vardict) (uint32, vardict, *dbus.Error) {
	token := tokenFromHandle(handle)
	unexport := p.f.exportRequest(handle, func() { p.f.adapters.AppChooser.NotifyCancel(token) })
	defer unexport()

	ids := make([]message.DesktopID, 0, len(choices))
	for _, c := range choices {
		ids = append(ids, message.DesktopID(c))
	}

	app := message.Application{AppID: appID, WindowIdentifier: parentWindow}
	choice, err := p.f.adapters.AppChooser.ChooseApplication(context.Background(), token, app, ids, decodeChooserOptions(options))

	results := vardict{}
	if err == nil {
		results["choice"] = dbus.MakeVariant(string(choice.ID))
	}
	return responseCode(err), results, nil
}

func (p *appChooserPortal) UpdateChoices(handle dbus.ObjectPath, choices []string) *dbus.Error {
	token := tokenFromHandle(handle)
	ids := make([]message.DesktopID, 0, len(choices))
	for _, c := range choices {
		ids = append(ids, message.DesktopID(c))
	}
	if err := p.f.adapters.AppChooser.UpdateChoices(context.Background(), token, ids); err != nil {
		return dbus.MakeFailedError(err)
	}
	return nil
}

type fileChooserPortal struct {
	f *Frontend
}

func (p *fileChooserPortal) open(call func() (message.SelectedFiles, error)) (uint32, vardict) {
	files, err := call()
	results := vardict{}
	if err == nil {
		results["uris"] = dbus.MakeVariant(files.URIs)
		results["writable"] = dbus.MakeVariant(files.Writable)
	}
	return responseCode(err), results
}

func (p *fileChooserPortal) OpenFile(handle dbus.ObjectPath, appID, parentWindow, title string, options vardict) (uint32, vardict, *dbus.Error) {
	token := tokenFromHandle(handle)
	unexport := p.f.exportRequest(handle, func() { p.f.adapters.FileChooser.NotifyCancel(token) })
	defer unexport()

	app := message.Application{AppID: appID, WindowIdentifier: parentWindow}
	code, results := p.open(func() (message.SelectedFiles, error) {
		return p.f.adapters.FileChooser.OpenFile(context.Background(), token, app, title, decodeOpenFileOptions(options))
	})
	return code, results, nil
}

func (p *fileChooserPortal) SaveFile(handle dbus.ObjectPath, appID, parentWindow, title string, options vardict) (uint32, vardict, *dbus.Error) {
	token := tokenFromHandle(handle)
	unexport := p.f.exportRequest(handle, func() { p.f.adapters.FileChooser.NotifyCancel(token) })
	defer unexport()

	app := message.Application{AppID: appID, WindowIdentifier: parentWindow}
	code, results := p.open(func() (message.SelectedFiles, error) {
		return p.f.adapters.FileChooser.SaveFile(context.Background(), token, app, title, decodeSaveFileOptions(options))
	})
	return code, results, nil
}

func (p *fileChooserPortal) SaveFiles(handle dbus.ObjectPath, appID, parentWindow, title string, options vardict) (uint32, vardict, *dbus.Error) {
	token := tokenFromHandle(handle)
	unexport := p.f.exportRequest(handle, func() { p.f.adapters.FileChooser.NotifyCancel(token) })
	defer unexport()

	app := message.Application{AppID: appID, WindowIdentifier: parentWindow}
	code, results := p.open(func() (message.SelectedFiles, error) {
		return p.f.adapters.FileChooser.SaveFiles(context.Background(), token, app, title, decodeSaveFilesOptions(options))
	})
	return code, results, nil
}

type wallpaperPortal struct {
	f *Frontend
}

func (p *wallpaperPortal) SetWallpaperURI(handle dbus.ObjectPath, appID, parentWindow, uri string, options vardict) (uint32, *dbus.Error) {
	token := tokenFromHandle(handle)
	unexport := p.f.exportRequest(handle, func() { p.f.adapters.Wallpaper.NotifyCancel(token) })
	defer unexport()

	app := message.Application{AppID: appID, WindowIdentifier: parentWindow}
	err := p.f.adapters.Wallpaper.SetWallpaperURI(context.Background(), token, app, uri, decodeWallpaperOptions(options))
	return responseCode(err), nil
}
