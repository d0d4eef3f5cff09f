package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileKindAudio   = 2
	FileKindImage   = 6
	FileKindUnknown = 99
)

func DetectFileTypeFromExt(filename string) int {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3", ".wav", ".ogg", ".m4a":
		return FileKindAudio
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg":
		return FileKindImage
	default:
		return FileKindUnknown
	}
}
