package constants

import "strings"

// Media types accepted for book cover uploads.
var AllowedCoverTypes = []string{"image/png", "image/jpeg", "image/jpg"}

func IsAllowedCoverType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	for _, allowed := range AllowedCoverTypes {
		if ct == allowed {
			return true
		}
	}
	return false
}

// CoverExtension maps an allowed media type to the stored file extension.
func CoverExtension(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	default:
		return ".jpg"
	}
}
