package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/podx/internal/formatter"
	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/player"
	"github.com/desertthunder/podx/internal/services"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/urfave/cli/v3"
)

// PodcastsList fetches and prints all episodes in the chosen format.
func (r *Runner) PodcastsList(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")

	r.logger.Info("fetching podcasts")

	podcasts, err := r.portal.Podcasts(ctx)
	if err != nil {
		return err
	}

	if len(podcasts) == 0 {
		return r.writePlain("No episodes found\n")
	}
	return r.writePodcasts(podcasts, format)
}

// PodcastsGet prints one episode's metadata as JSON.
func (r *Runner) PodcastsGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: episode id", shared.ErrMissingArgument)
	}

	podcast, err := r.portal.Podcast(ctx, id)
	if err != nil {
		return err
	}

	data, err := formatter.ToMetadataJSON(*podcast)
	if err != nil {
		return fmt.Errorf("failed to render metadata: %w", err)
	}
	r.output.Write(data)
	return r.writePlain("\n")
}

// PodcastsPlay plays a single episode through the external player and blocks
// until it ends or the command is interrupted.
//
// The playlist holds only the selected episode, so a natural end never
// auto-advances. Play reporting and history recording happen through the
// engine's reporter, the same wiring the TUI plays go through.
func (r *Runner) PodcastsPlay(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: episode id", shared.ErrMissingArgument)
	}

	podcast, err := r.portal.Podcast(ctx, id)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	r.media.SetOnEnded(func() { close(done) })

	r.engine.SetPlaylist([]models.Podcast{*podcast})
	r.engine.Select(ctx, *podcast)
	r.engine.TogglePlayPause(ctx)

	if r.engine.State() != player.Playing {
		return fmt.Errorf("%w: could not start playback for %q", shared.ErrPlaybackBlocked, podcast.Title)
	}

	r.writePlain("▶ Playing %s", podcast.Title)
	if author := podcast.AuthorName(); author != "Unknown" {
		r.writePlain(" by %s", author)
	}
	r.writePlain("\n")
	if podcast.DurationMinutes != nil {
		r.writePlain("Duration: %s\n", shared.FormatDuration(*podcast.DurationMinutes*60))
	}
	r.writePlain("Press Ctrl+C to stop\n")

	select {
	case <-done:
		r.engine.HandleEnded(ctx)
		return r.writePlain("✓ Finished\n")
	case <-ctx.Done():
		r.media.Pause()
		return nil
	}
}

// PodcastsUpload creates an episode via multipart upload. The portal enforces
// the lecturer/admin role requirement server-side.
func (r *Runner) PodcastsUpload(ctx context.Context, cmd *cli.Command) error {
	req := services.UploadRequest{
		Title:           cmd.String("title"),
		Description:     cmd.String("description"),
		Author:          cmd.String("author"),
		DurationMinutes: cmd.Int("duration"),
		AudioPath:       cmd.String("audio"),
		CoverArtPath:    cmd.String("cover"),
	}

	r.logger.Info("uploading episode", "title", req.Title, "audio", req.AudioPath)

	podcast, err := r.portal.Upload(ctx, req)
	if err != nil {
		return err
	}

	r.writePlain("✓ Uploaded %q (id %d)\n", podcast.Title, podcast.ID)
	return nil
}

// PodcastsHistory prints locally recorded play events, newest first.
func (r *Runner) PodcastsHistory(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")

	if r.history == nil {
		return fmt.Errorf("%w: history store not initialized", shared.ErrServiceUnavailable)
	}

	events, err := r.history.Recent(limit)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return r.writePlain("No plays recorded\n")
	}

	for i, event := range events {
		r.writePlain("%d. [%d] %s (%s)\n", i+1, event.PodcastID, event.Title, event.PlayedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
