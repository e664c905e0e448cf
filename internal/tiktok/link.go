package tiktok

import "regexp"

var (
	desktopLinkPattern = regexp.MustCompile(`https?://(?:www\.|m\.)?tiktok\.com/(?:embed|@[\w.-]+/video|v)/(\d+)`)
	// The optional trailing slash keeps the requested URL identical to what the user posted.
	shortLinkPattern = regexp.MustCompile(`https?://(?:vm|vt)\.tiktok\.com/\w+/?`)
)

// LinkForm tells which kind of video link was found in a message.
type LinkForm int

const (
	LinkNone LinkForm = iota
	LinkDesktop
	LinkShort
)

func (f LinkForm) String() string {
	switch f {
	case LinkDesktop:
		return "desktop"
	case LinkShort:
		return "short"
	default:
		return "none"
	}
}

// Link is a recognized video link. Desktop links carry the video id directly;
// short links carry the URL that must be resolved first.
type Link struct {
	Form    LinkForm
	URL     string
	VideoID VideoReference
}

// MatchLink looks for a video link in free-form text. A short link takes
// precedence: its video id only comes from the redirect target, never from
// the rest of the text.
func MatchLink(text string) (Link, bool) {
	if m := shortLinkPattern.FindString(text); m != "" {
		return Link{Form: LinkShort, URL: m}, true
	}
	if m := desktopLinkPattern.FindStringSubmatch(text); m != nil {
		return Link{Form: LinkDesktop, URL: m[0], VideoID: VideoReference(m[1])}, true
	}
	return Link{}, false
}

// ExtractVideoID applies the desktop pattern only, for content obtained after
// resolving a short link.
func ExtractVideoID(content string) (VideoReference, bool) {
	m := desktopLinkPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return VideoReference(m[1]), true
}
