// Package fileext lists the file extensions accepted for lecture attachments.
package fileext

import (
	"path/filepath"
	"strings"
)

// Extensions are the allowed attachment extensions, without leading dot.
var Extensions = []string{
	"png", "jpg", "jpeg", "gif", "svg", "pdf", "zip", "tar", "txt", "rtf", "md", "htm", "html",
	"json", "doc", "docx", "csv", "xls", "xlsx", "ppt", "pptx", "pages", "pages-tef", "numbers",
	"key", "odt", "ods", "odp", "odg", "odc", "odi", "odf",
}

// AllowedFileExtensions returns a human-readable list, e.g. "png, jpg, jpeg".
func AllowedFileExtensions() string {
	return strings.Join(Extensions, ", ")
}

// AcceptedFileExtensions returns the list in file-chooser form, e.g. ".png,.jpg".
func AcceptedFileExtensions() string {
	return strings.Join(Dotted(), ",")
}

// Dotted returns the extensions with a leading dot.
func Dotted() []string {
	out := make([]string, len(Extensions))
	for i, ext := range Extensions {
		out[i] = "." + ext
	}
	return out
}

// Allowed reports whether name ends with one of the allowed extensions.
func Allowed(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
