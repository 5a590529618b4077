package message

// Kind identifies one externally exposed operation. The dispatch loop's
// selection table is keyed by it; update-only kinds deliberately have no
// table row because they never create a responder.
type Kind string

const (
	KindAccountGetUserInformation Kind = "account.get-user-information"
	KindAppChooserChoose          Kind = "app-chooser.choose-application"
	KindAppChooserUpdateChoices   Kind = "app-chooser.update-choices"
	KindFileChooserOpenFile       Kind = "file-chooser.open-file"
	KindFileChooserSaveFile       Kind = "file-chooser.save-file"
	KindFileChooserSaveFiles      Kind = "file-chooser.save-files"
	KindWallpaperSetURI           Kind = "wallpaper.set-wallpaper-uri"
)

// Payload is one typed portal request variant. Every variant carries the
// minimal application context, its operation-specific options and the
// one-shot reply the accepting responder must settle exactly once.
//
// Reject settles the embedded reply with err without knowing its value
// type. The dispatch loop uses it to unblock the awaiting requester when no
// responder can take the request.
type Payload interface {
	Kind() Kind
	Reject(err error) error
}

// AccountGetUserInformation asks the user to share basic account details.
type AccountGetUserInformation struct {
	App     Application
	Options UserInformationOptions
	Reply   *Reply[UserInformation]
}

func (*AccountGetUserInformation) Kind() Kind { return KindAccountGetUserInformation }

func (p *AccountGetUserInformation) Reject(err error) error { return p.Reply.Reject(err) }

// AppChooserChoose asks the user to pick an application out of Choices.
type AppChooserChoose struct {
	App     Application
	Choices []DesktopID
	Options ChooserOptions
	Reply   *Reply[Choice]
}

func (*AppChooserChoose) Kind() Kind { return KindAppChooserChoose }

func (p *AppChooserChoose) Reject(err error) error { return p.Reply.Reject(err) }

// AppChooserUpdateChoices replaces the choices of an already open chooser
// dialog. It is routed to the registered responder and never creates one.
type AppChooserUpdateChoices struct {
	Choices []DesktopID
	Reply   *Reply[Unit]
}

func (*AppChooserUpdateChoices) Kind() Kind { return KindAppChooserUpdateChoices }

func (p *AppChooserUpdateChoices) Reject(err error) error { return p.Reply.Reject(err) }

// FileChooserOpenFile asks the user to select one or more existing files.
type FileChooserOpenFile struct {
	App     Application
	Title   string
	Options OpenFileOptions
	Reply   *Reply[SelectedFiles]
}

func (*FileChooserOpenFile) Kind() Kind { return KindFileChooserOpenFile }

func (p *FileChooserOpenFile) Reject(err error) error { return p.Reply.Reject(err) }

// FileChooserSaveFile asks the user for a destination to save one file.
type FileChooserSaveFile struct {
	App     Application
	Title   string
	Options SaveFileOptions
	Reply   *Reply[SelectedFiles]
}

func (*FileChooserSaveFile) Kind() Kind { return KindFileChooserSaveFile }

func (p *FileChooserSaveFile) Reject(err error) error { return p.Reply.Reject(err) }

// FileChooserSaveFiles asks the user for a folder to save a set of files.
type FileChooserSaveFiles struct {
	App     Application
	Title   string
	Options SaveFilesOptions
	Reply   *Reply[SelectedFiles]
}

func (*FileChooserSaveFiles) Kind() Kind { return KindFileChooserSaveFiles }

func (p *FileChooserSaveFiles) Reject(err error) error { return p.Reply.Reject(err) }

// WallpaperSetURI asks the user to confirm applying a wallpaper.
type WallpaperSetURI struct {
	App     Application
	URI     string
	Options WallpaperOptions
	Reply   *Reply[Unit]
}

func (*WallpaperSetURI) Kind() Kind { return KindWallpaperSetURI }

func (p *WallpaperSetURI) Reject(err error) error { return p.Reply.Reject(err) }
