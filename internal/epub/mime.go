package epub

import (
	"mime"
	"path/filepath"
	"strings"
)

// mediaTypes covers the asset types an OPF 2.0 reading system knows, so the
// result does not depend on the host's mime tables.
var mediaTypes = map[string]string{
	".css":   "text/css",
	".gif":   "image/gif",
	".htm":   "application/xhtml+xml",
	".html":  "application/xhtml+xml",
	".jpeg":  "image/jpeg",
	".jpg":   "image/jpeg",
	".ncx":   "application/x-dtbncx+xml",
	".otf":   "application/vnd.ms-opentype",
	".png":   "image/png",
	".svg":   "image/svg+xml",
	".ttf":   "application/x-font-truetype",
	".woff":  "application/font-woff",
	".xhtml": "application/xhtml+xml",
	".xml":   "application/xml",
	".xpgt":  "application/vnd.adobe-page-template+xml",
}

const defaultMediaType = "application/octet-stream"

// GuessMediaType returns the media type for filename's extension.
func GuessMediaType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := mediaTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return defaultMediaType
}
