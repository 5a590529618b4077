package message

// Application carries the identity of the external application behind a
// portal request, as far as the protocol layer could establish it. Both
// fields may be empty.
type Application struct {
	AppID            string
	WindowIdentifier string
}

// Unit is the reply value of operations that only signal completion.
type Unit struct{}

// UserInformation is the Account portal result.
type UserInformation struct {
	// ID is the account name (typically the login name).
	ID string
	// Name is the user's display name.
	Name string
	// Image is a URI pointing at the profile picture, or empty.
	Image string
}

// UserInformationOptions are the Account.GetUserInformation options.
type UserInformationOptions struct {
	// Reason the application gives for requesting the information.
	Reason string
}

// DesktopID names an installed application by its desktop file ID.
type DesktopID string

// Choice is the AppChooser result: the application the user picked.
type Choice struct {
	ID DesktopID
}

// ChooserOptions are the AppChooser.ChooseApplication options.
type ChooserOptions struct {
	LastChoice  DesktopID
	Modal       bool
	ContentType string
	URI         string
	Filename    string
}

// FileFilter narrows the files offered by a file chooser dialog.
type FileFilter struct {
	Name      string
	Patterns  []string
	MimeTypes []string
}

// OpenFileOptions are the FileChooser.OpenFile options.
type OpenFileOptions struct {
	AcceptLabel   string
	Modal         bool
	Multiple      bool
	Directory     bool
	Filters       []FileFilter
	CurrentFilter *FileFilter
}

// SaveFileOptions are the FileChooser.SaveFile options.
type SaveFileOptions struct {
	AcceptLabel   string
	Modal         bool
	CurrentName   string
	CurrentFolder string
	CurrentFile   string
	Filters       []FileFilter
	CurrentFilter *FileFilter
}

// SaveFilesOptions are the FileChooser.SaveFiles options. Files holds the
// names the application wants written into the chosen folder.
type SaveFilesOptions struct {
	AcceptLabel   string
	Modal         bool
	CurrentFolder string
	Files         []string
}

// SelectedFiles is the FileChooser result.
type SelectedFiles struct {
	URIs     []string
	Writable bool
}

// WallpaperTarget says where a wallpaper should be applied.
type WallpaperTarget string

const (
	WallpaperBackground WallpaperTarget = "background"
	WallpaperLockscreen WallpaperTarget = "lockscreen"
	WallpaperBoth       WallpaperTarget = "both"
)

// WallpaperOptions are the Wallpaper.SetWallpaperURI options.
type WallpaperOptions struct {
	ShowPreview bool
	SetOn       WallpaperTarget
}
