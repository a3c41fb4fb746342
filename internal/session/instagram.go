package session

import (
	"slices"
	"strings"

	"github.com/jonathan/archinews-creator/internal/instagram"
)

// AddEnding offers a new caption ending. Empty and duplicate endings are ignored.
func (s *State) AddEnding(ending string) bool {
	ending = strings.TrimSpace(ending)
	if ending == "" || slices.Contains(s.Caption.Endings, ending) {
		return false
	}
	s.Caption.Endings = append(s.Caption.Endings, ending)
	return true
}

// SelectEndings ticks endings in the given order. Unknown endings are skipped.
func (s *State) SelectEndings(endings []string) []string {
	selected := make([]string, 0, len(endings))
	for _, e := range endings {
		if slices.Contains(s.Caption.Endings, e) && !slices.Contains(selected, e) {
			selected = append(selected, e)
		}
	}
	s.Caption.Selected = selected
	return selected
}

// SetCaption records a generated caption and the settings used for it.
func (s *State) SetCaption(text, tone string, length int) {
	s.Caption.Text = text
	s.Caption.Tone = tone
	s.Caption.Length = length
}

// CaptionText returns the caption for download.
func (s *State) CaptionText() (string, error) {
	if s.Caption.Text == "" {
		return "", ErrNoCaption
	}
	return s.Caption.Text, nil
}

// AddCustomHashtag offers a custom hashtag, adding the leading '#' when missing.
// Duplicates by exact string are ignored.
func (s *State) AddCustomHashtag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "#" {
		return false
	}
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	if slices.Contains(s.Hashtags.Custom, tag) {
		return false
	}
	s.Hashtags.Custom = append(s.Hashtags.Custom, tag)
	return true
}

// TickHashtags selects custom hashtags. Unknown tags are skipped.
func (s *State) TickHashtags(tags []string) []string {
	ticked := make([]string, 0, len(tags))
	for _, t := range tags {
		if slices.Contains(s.Hashtags.Custom, t) && !slices.Contains(ticked, t) {
			ticked = append(ticked, t)
		}
	}
	s.Hashtags.Ticked = ticked
	return ticked
}

// SetAutoHashtags records generated hashtags.
func (s *State) SetAutoHashtags(tags []string) {
	s.Hashtags.Auto = slices.Clone(tags)
}

// FinalHashtags returns generated hashtags followed by ticked custom ones.
func (s *State) FinalHashtags() []string {
	return instagram.CombineHashtags(s.Hashtags.Auto, s.Hashtags.Ticked)
}

// HashtagText renders the final hashtags for download.
func (s *State) HashtagText() string {
	return instagram.HashtagText(s.FinalHashtags())
}
