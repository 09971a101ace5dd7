// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI cycles through four views with tab:
//  1. [DashboardView] : portal and database health plus session summary
//  2. [PodcastListView] : browse episodes, enter to load one into the player
//  3. [PlayerView] : transport controls, progress bar, volume and seeking
//  4. [StreamListView] : live streams refreshed by the background poller
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Every render evaluates the session route guard first: a pending session
// shows a holding screen and a missing credential shows a sign-in notice, so
// guarded content is never drawn for an unauthenticated user.
//
// Stream updates flow through a channel from tasks.Poller; a 1s tick drives
// playback position sync. Keyboard navigation uses vim-style bindings with
// contextual help via charmbracelet/bubbles/help.
package ui
