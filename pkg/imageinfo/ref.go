package imageinfo

import "strings"

var remoteSchemes = []string{"http://", "https://", "data:", "ftp://"}

// IsRemote reports whether an image reference points at a URL rather than a
// local file.
func IsRemote(ref string) bool {
	lower := strings.ToLower(ref)
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}
