// Package tiktok recognizes TikTok video links and reads video metadata from
// the unofficial feed API.
package tiktok

import "strings"

// VideoReference is the numeric id (aweme id) of a single video.
type VideoReference string

// String returns the id as a plain string.
func (r VideoReference) String() string {
	return string(r)
}

// Video is the resolved data of one video, built from a single feed API call.
type Video struct {
	ID          VideoReference
	Description string
	VideoURL    string
	Author      Author
	Statistics  Statistics
}

// Author describes the uploader of a video.
type Author struct {
	Name      string `json:"nickname"`
	Username  string `json:"unique_id"`
	AvatarURI string `json:"avatar_uri"`

	avatarTemplate string
}

// AvatarURL derives the avatar image URL from the avatar URI and the CDN template.
func (a Author) AvatarURL() string {
	if strings.TrimSpace(a.AvatarURI) == "" {
		return ""
	}
	template := a.avatarTemplate
	if template == "" {
		template = DefaultAvatarURLTemplate
	}
	return strings.ReplaceAll(template, avatarURIPlaceholder, a.AvatarURI)
}

// ProfileURL returns the public profile link of the author.
func (a Author) ProfileURL() string {
	return "https://tiktok.com/@" + a.Username
}

// Statistics holds the engagement counters as reported by the feed API.
type Statistics struct {
	Likes    uint64 `json:"digg_count"`
	Comments uint64 `json:"comment_count"`
	Views    uint64 `json:"play_count"`
}

type feedResponse struct {
	AwemeList []aweme `json:"aweme_list"`
}

type aweme struct {
	AwemeID    string     `json:"aweme_id"`
	Desc       string     `json:"desc"`
	Author     Author     `json:"author"`
	Video      awemeVideo `json:"video"`
	Statistics Statistics `json:"statistics"`
}

type awemeVideo struct {
	PlayAddr struct {
		URLList []string `json:"url_list"`
	} `json:"play_addr"`
}
