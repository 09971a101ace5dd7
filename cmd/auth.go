package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/podx/internal/services"
	"github.com/desertthunder/podx/internal/session"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges credentials for a portal token and persists it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	if r.session == nil {
		return fmt.Errorf("%w: session manager not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("signing in", "username", username)

	token, err := r.portal.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}

	route, err := r.session.Login(token)
	if err != nil {
		return err
	}

	sess := r.session.Current()
	r.writePlain("✓ Signed in as %s (%s)\n", sess.User.Username, sess.User.Role)
	if route == session.RouteAdmin {
		r.writePlain("Admin console available: podx admin --help\n")
	}
	return nil
}

// AuthRegister creates a new portal account. The new account is not signed in
// automatically; run auth login afterwards.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	req := services.RegisterRequest{
		Username: cmd.String("username"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	r.logger.Info("registering account", "username", req.Username)

	user, err := r.portal.Register(ctx, req)
	if err != nil {
		return err
	}

	r.writePlain("✓ Account created: %s <%s>\n", user.Username, user.Email)
	r.writePlain("Sign in with: podx auth login -u %s -p <password>\n", user.Username)
	return nil
}

// AuthLogout discards the stored credential. Idempotent.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: session manager not initialized", shared.ErrServiceUnavailable)
	}

	r.session.Logout()
	r.logger.Info("signed out")
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus shows the locally held session and verifies it with the portal.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: session manager not initialized", shared.ErrServiceUnavailable)
	}

	sess := r.session.Current()
	if !sess.Authenticated {
		return r.writePlain("✗ Not signed in\n")
	}

	r.writePlain("✓ Signed in as %s (%s)\n", sess.User.Username, sess.User.Role)

	// The stored credential is parsed without verification; asking the portal
	// who we are is the only way to know it is still accepted.
	user, err := r.portal.Me(ctx)
	if err != nil {
		r.writePlain("✗ Portal rejected the credential: %v\n", err)
		return nil
	}

	r.writePlain("Portal: ✓ Credential accepted\n")
	r.writePlain("Email: %s\n", user.Email)
	if !user.IsActive {
		r.writePlain("⚠ Account is deactivated\n")
	}
	return nil
}
