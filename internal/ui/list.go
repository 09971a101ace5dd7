package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/shared"
)

var (
	_ list.Item = podcastItem{}
	_ list.Item = streamItem{}
)

// podcastItem wraps [models.Podcast] to implement [list.Item].
type podcastItem struct {
	podcast models.Podcast
}

func (i podcastItem) FilterValue() string { return i.podcast.Title }
func (i podcastItem) Title() string       { return i.podcast.Title }
func (i podcastItem) Description() string {
	desc := i.podcast.AuthorName()
	if i.podcast.DurationMinutes != nil {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(*i.podcast.DurationMinutes*60))
	}
	if i.podcast.Plays > 0 {
		desc = fmt.Sprintf("%s • %d plays", desc, i.podcast.Plays)
	}
	return desc
}

// streamItem wraps [models.LiveStream] to implement [list.Item].
type streamItem struct {
	stream models.LiveStream
}

func (i streamItem) FilterValue() string { return i.stream.Title }
func (i streamItem) Title() string {
	if i.stream.IsLive() {
		return fmt.Sprintf("● %s", i.stream.Title)
	}
	return i.stream.Title
}
func (i streamItem) Description() string {
	desc := i.stream.Status
	if i.stream.IsLive() {
		desc = fmt.Sprintf("%s • %d watching", desc, i.stream.CurrentViewers)
	}
	return desc
}
