package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/services"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AdminUsers lists every portal account.
func (r *Runner) AdminUsers(ctx context.Context, cmd *cli.Command) error {
	users, err := r.admin.Users(ctx)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		return r.writePlain("No accounts found\n")
	}

	for i, user := range users {
		marker := ""
		if !user.IsActive {
			marker = " (inactive)"
		}
		r.writePlain("%d. [%d] %s <%s> %s%s\n", i+1, user.ID, user.Username, user.Email, user.Role, marker)
	}
	return nil
}

// AdminUserUpdate changes an account's role, email or active flag. Only the
// fields set by flags are sent.
func (r *Runner) AdminUserUpdate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	update := services.UserUpdate{}
	if role := cmd.String("role"); role != "" {
		switch role {
		case models.RoleUser, models.RoleLecturer, models.RoleAdmin:
		default:
			return fmt.Errorf("%w: unknown role %q", shared.ErrInvalidFlag, role)
		}
		update.Role = &role
	}
	if email := cmd.String("email"); email != "" {
		update.Email = &email
	}
	if cmd.Bool("deactivate") && cmd.Bool("activate") {
		return fmt.Errorf("%w: cannot specify both --activate and --deactivate", shared.ErrInvalidFlag)
	}
	if cmd.Bool("deactivate") {
		inactive := false
		update.IsActive = &inactive
	}
	if cmd.Bool("activate") {
		active := true
		update.IsActive = &active
	}

	if update.Role == nil && update.Email == nil && update.IsActive == nil {
		return fmt.Errorf("%w: nothing to update", shared.ErrMissingArgument)
	}

	r.logger.Info("updating account", "id", id)

	user, err := r.admin.UpdateUser(ctx, id, update)
	if err != nil {
		return err
	}

	r.writePlain("✓ Updated %s: role %s, active %v\n", user.Username, user.Role, user.IsActive)
	return nil
}

// AdminUserDelete removes an account.
func (r *Runner) AdminUserDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	if err := r.admin.DeleteUser(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted user %d\n", id)
}

// AdminPodcasts lists every episode for moderation.
func (r *Runner) AdminPodcasts(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")

	podcasts, err := r.admin.Podcasts(ctx)
	if err != nil {
		return err
	}

	if len(podcasts) == 0 {
		return r.writePlain("No episodes found\n")
	}
	return r.writePodcasts(podcasts, format)
}

// AdminPodcastDelete removes an episode.
func (r *Runner) AdminPodcastDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: podcast id", shared.ErrMissingArgument)
	}

	if err := r.admin.DeletePodcast(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted episode %d\n", id)
}

// AdminStreams lists every stream for moderation.
func (r *Runner) AdminStreams(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")

	streams, err := r.admin.Streams(ctx)
	if err != nil {
		return err
	}

	if len(streams) == 0 {
		return r.writePlain("No streams found\n")
	}
	return r.writeStreams(streams, format)
}

// AdminStreamStatus forces a stream's status.
func (r *Runner) AdminStreamStatus(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	status := cmd.StringArg("status")
	if id == 0 || status == "" {
		return fmt.Errorf("%w: stream id and status", shared.ErrMissingArgument)
	}

	switch status {
	case models.StreamLive, models.StreamOffline, models.StreamScheduled:
	default:
		return fmt.Errorf("%w: unknown status %q", shared.ErrInvalidArgument, status)
	}

	stream, err := r.admin.UpdateStreamStatus(ctx, id, status)
	if err != nil {
		return err
	}

	r.writePlain("✓ %q is now %s\n", stream.Title, stream.Status)
	return nil
}

// AdminStreamDelete removes a stream.
func (r *Runner) AdminStreamDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: stream id", shared.ErrMissingArgument)
	}

	if err := r.admin.DeleteStream(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted stream %d\n", id)
}
