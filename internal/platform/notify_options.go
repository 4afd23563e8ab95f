package platform

// AppName identifies the application to the notification center.
const AppName = "PeakFinder"

// CategoryTransfer marks notifications about a finished save or copy.
const CategoryTransfer = "transfer.complete"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath points to an image shown with the notification where supported.
	IconPath string
	// Category is a freedesktop notification category hint.
	Category string
	// Timeout in milliseconds, zero for the platform default.
	Timeout int32
}
