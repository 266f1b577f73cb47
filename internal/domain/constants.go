package domain

const (
	UploadFieldName = "files[]"
	NoQRCodeFound   = "No QR code found"
)

const (
	MsgNoFilePart      = "No file part"
	MsgInvalidFileType = "Invalid file type"
	MsgFileTooLarge    = "File too large"
	MsgInternalError   = "Internal Server Error"
)

const (
	DefaultMaxUploadSize = 16 << 20
	DefaultUploadDir     = "/tmp/uploads"
	DefaultRenderDPI     = 72
	DefaultQRMinWidth    = 800
	DefaultQRQuietZone   = 16
)

const (
	ScratchWorkspacePrefix = "req-"
	ScratchImagePrefix     = "page-"
	ScratchImageExt        = ".png"
)

var AllowedExtensions = map[string]bool{
	"pdf": true,
}
