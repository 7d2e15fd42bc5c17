package domain

import (
	"path/filepath"
	"strings"
)

// MaxAssetBytes is the largest file the draft queue accepts. The value
// matches the copy shown in the drop zone ("Max: 5MB").
const MaxAssetBytes = 5_000_000

// acceptedAssetExts maps accepted file extensions to their MIME type.
var acceptedAssetExts = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// AssetMIMEType returns the MIME type for an accepted file name and
// whether the extension is accepted at all.
func AssetMIMEType(name string) (string, bool) {
	mime, ok := acceptedAssetExts[strings.ToLower(filepath.Ext(name))]
	return mime, ok
}

// AssetDraft is a user-supplied file staged client-side before upload.
// PreviewPath is a scoped resource owned exclusively by the queue entry
// holding the draft; it must be released on every path that removes the
// draft from the queue.
type AssetDraft struct {
	Ref         string // Queue-assigned handle for removal
	Name        string // Original file name
	SizeBytes   int64
	MIMEType    string
	PreviewPath string // Released when the draft leaves the queue
	Data        []byte // Raw bytes, consumed at submit time
}
