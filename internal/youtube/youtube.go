// Package youtube extracts video identifiers from submitted URLs.
package youtube

import "regexp"

// Matches watch?v=, youtu.be/ and embed/ style URLs; video ids are always
// 11 characters of [A-Za-z0-9_-].
var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|embed/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID returns the 11-character video id found in url, or the
// empty string when the URL does not look like a YouTube video link.
// Callers skip non-matching URLs silently rather than failing the request.
func ExtractVideoID(url string) string {
	match := videoIDPattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}
