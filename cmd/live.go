package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/podx/internal/formatter"
	"github.com/desertthunder/podx/internal/services"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/desertthunder/podx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// LiveList fetches and prints streams, optionally filtered by status.
func (r *Runner) LiveList(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	status := cmd.String("status")

	r.logger.Info("fetching live streams", "status", status)

	streams, err := r.live.Streams(ctx, status)
	if err != nil {
		return err
	}

	if len(streams) == 0 {
		return r.writePlain("No streams found\n")
	}
	return r.writeStreams(streams, format)
}

// LiveJoin registers the viewer with a stream and prints its URL. With --open
// the URL is also opened in the default browser.
func (r *Runner) LiveJoin(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: stream id", shared.ErrMissingArgument)
	}

	stream, err := r.live.Stream(ctx, id)
	if err != nil {
		return err
	}

	if err := r.live.Join(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Joined %q (%d watching)\n", stream.Title, stream.CurrentViewers+1)

	if stream.StreamURL == nil || *stream.StreamURL == "" {
		r.writePlain("Stream has no URL yet\n")
		return nil
	}

	r.writePlain("URL: %s\n", *stream.StreamURL)
	if cmd.Bool("open") {
		if err := shared.OpenBrowser(*stream.StreamURL); err != nil {
			r.logger.Warnf("failed to open browser: %v", err)
		}
	}
	return nil
}

// LiveLeave removes the viewer from a stream.
func (r *Runner) LiveLeave(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: stream id", shared.ErrMissingArgument)
	}

	if err := r.live.Leave(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Left stream %d\n", id)
}

// LiveStart creates a broadcast entry. The portal enforces the lecturer/admin
// role requirement server-side.
func (r *Runner) LiveStart(ctx context.Context, cmd *cli.Command) error {
	req := services.StartRequest{Title: cmd.String("title")}
	if desc := cmd.String("description"); desc != "" {
		req.Description = &desc
	}
	if url := cmd.String("url"); url != "" {
		req.StreamURL = &url
	}

	r.logger.Info("starting broadcast", "title", req.Title)

	stream, err := r.live.Start(ctx, req)
	if err != nil {
		return err
	}

	r.writePlain("✓ Broadcasting %q (id %d)\n", stream.Title, stream.ID)
	return nil
}

// LiveStop takes a broadcast offline.
func (r *Runner) LiveStop(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: stream id", shared.ErrMissingArgument)
	}

	stream, err := r.live.Stop(ctx, id)
	if err != nil {
		return err
	}

	r.writePlain("✓ Stopped %q\n", stream.Title)
	return nil
}

// LiveWatch polls the stream list and prints each refresh until the command
// is interrupted.
func (r *Runner) LiveWatch(ctx context.Context, cmd *cli.Command) error {
	interval := cmd.Int("interval")
	status := cmd.String("status")

	poller := tasks.NewPoller(tasks.PollerOpts{
		Lister:   r.live,
		Logger:   r.logger,
		Interval: time.Duration(interval) * time.Second,
		Status:   status,
	})

	updates := make(chan tasks.StreamUpdate, 16)
	go poller.Run(ctx, updates)

	r.writePlain("Watching streams every %ds. Press Ctrl+C to stop\n\n", interval)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Err != nil {
				r.logger.Warnf("stream poll failed: %v", update.Err)
				continue
			}
			if len(update.Streams) == 0 {
				r.writePlain("[%s] no streams\n", time.Now().Format("15:04:05"))
				continue
			}
			data, err := formatter.StreamsToText(update.Streams)
			if err != nil {
				return err
			}
			r.writePlain("[%s]\n", time.Now().Format("15:04:05"))
			r.output.Write(data)
			r.writePlain("\n")
		case <-ctx.Done():
			return nil
		}
	}
}
