// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: txt, csv, markdown or json",
		Value:   "txt",
	}
}

// authCommand handles portal authentication
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage portal authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with username and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Portal username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Portal password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new portal account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Desired username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored credential",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session and verify it with the portal",
				Action: r.AuthStatus,
			},
		},
	}
}

// podcastsCommand handles episode browsing, playback and uploads
func podcastsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "podcasts",
		Aliases: []string{"pod"},
		Usage:   "Browse and play podcast episodes",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all episodes",
				Flags:  []cli.Flag{formatFlag()},
				Action: r.PodcastsList,
			},
			{
				Name:  "get",
				Usage: "Show one episode's metadata as JSON",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Action: r.PodcastsGet,
			},
			{
				Name:  "play",
				Usage: "Play an episode through the external player",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Action: r.PodcastsPlay,
			},
			{
				Name:  "upload",
				Usage: "Upload a new episode (requires lecturer or admin role)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Episode title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "audio",
						Aliases:  []string{"a"},
						Usage:    "Path to the audio file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Episode description",
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Author name",
					},
					&cli.IntFlag{
						Name:  "duration",
						Usage: "Duration in minutes",
					},
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Path to cover art",
					},
				},
				Action: r.PodcastsUpload,
			},
			{
				Name:  "history",
				Usage: "Show locally recorded play history",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum events to show",
						Value: 20,
					},
				},
				Action: r.PodcastsHistory,
			},
		},
	}
}

// liveCommand handles live stream operations
func liveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "live",
		Usage: "Live stream operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List live streams",
				Flags: []cli.Flag{
					formatFlag(),
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status: live, offline or scheduled",
					},
				},
				Action: r.LiveList,
			},
			{
				Name:  "join",
				Usage: "Join a stream as a viewer",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the stream URL in the browser",
					},
				},
				Action: r.LiveJoin,
			},
			{
				Name:  "leave",
				Usage: "Leave a stream",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Action: r.LiveLeave,
			},
			{
				Name:  "start",
				Usage: "Start a broadcast (requires lecturer or admin role)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Stream title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Stream description",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "External stream URL",
					},
				},
				Action: r.LiveStart,
			},
			{
				Name:  "stop",
				Usage: "Take a broadcast offline",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Action: r.LiveStop,
			},
			{
				Name:  "watch",
				Usage: "Poll the stream list and print changes until interrupted",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "interval",
						Usage: "Poll interval in seconds",
						Value: 15,
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status: live, offline or scheduled",
					},
				},
				Action: r.LiveWatch,
			},
		},
	}
}

// adminCommand handles the moderation console (admin credential required)
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Moderation console (admin role required)",
		Commands: []*cli.Command{
			{
				Name:  "users",
				Usage: "Manage accounts",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all accounts",
						Action: r.AdminUsers,
					},
					{
						Name:  "update",
						Usage: "Update an account",
						Arguments: []cli.Argument{
							&cli.IntArg{Name: "id"},
						},
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "role",
								Usage: "New role: user, lecturer or admin",
							},
							&cli.StringFlag{
								Name:  "email",
								Usage: "New email",
							},
							&cli.BoolFlag{
								Name:  "deactivate",
								Usage: "Deactivate the account",
							},
							&cli.BoolFlag{
								Name:  "activate",
								Usage: "Reactivate the account",
							},
						},
						Action: r.AdminUserUpdate,
					},
					{
						Name:  "delete",
						Usage: "Delete an account",
						Arguments: []cli.Argument{
							&cli.IntArg{Name: "id"},
						},
						Action: r.AdminUserDelete,
					},
				},
			},
			{
				Name:  "podcasts",
				Usage: "Moderate episodes",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all episodes",
						Flags:  []cli.Flag{formatFlag()},
						Action: r.AdminPodcasts,
					},
					{
						Name:  "delete",
						Usage: "Delete an episode",
						Arguments: []cli.Argument{
							&cli.IntArg{Name: "id"},
						},
						Action: r.AdminPodcastDelete,
					},
				},
			},
			{
				Name:  "streams",
				Usage: "Moderate live streams",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all streams",
						Flags:  []cli.Flag{formatFlag()},
						Action: r.AdminStreams,
					},
					{
						Name:  "status",
						Usage: "Force a stream's status",
						Arguments: []cli.Argument{
							&cli.IntArg{Name: "id"},
							&cli.StringArg{Name: "status"},
						},
						Action: r.AdminStreamStatus,
					},
					{
						Name:  "delete",
						Usage: "Delete a stream",
						Arguments: []cli.Argument{
							&cli.IntArg{Name: "id"},
						},
						Action: r.AdminStreamDelete,
					},
				},
			},
		},
	}
}

// apiCommand handles direct portal API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the portal",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the portal, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "dump",
				Usage: "Full portal state dump (health, podcasts, streams)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIDump,
			},
		},
	}
}

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// healthCommand reports portal availability.
func healthCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check portal and database availability",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Health,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal interface",
		Action:  r.TUI,
	}
}
