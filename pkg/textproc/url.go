package textproc

import "regexp"

// URLPattern matches a bare http(s) URL, shared by the WhatsApp/Telegram
// parsers (link classification) and the bid-response detector (§4.9 treats
// any message containing a URL as a bid).
var URLPattern = regexp.MustCompile(`(?i)https?://\S+`)

// ContainsURL reports whether s contains an http(s) URL.
func ContainsURL(s string) bool {
	return URLPattern.MatchString(s)
}
