// package formatter renders podcast and live stream lists to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/shared"
)

// PodcastsToCSV converts a podcast list to CSV with columns:
// ID, Title, Author, Duration, Plays, Uploaded
func PodcastsToCSV(podcasts []models.Podcast) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Author", "Duration", "Plays", "Uploaded"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range podcasts {
		record := []string{
			strconv.Itoa(p.ID),
			p.Title,
			p.AuthorName(),
			durationLabel(p),
			strconv.Itoa(p.Plays),
			p.UploadedAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// PodcastsToMarkdown converts a podcast list to a Markdown table.
func PodcastsToMarkdown(podcasts []models.Podcast) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Podcasts\n\n")
	buf.WriteString(fmt.Sprintf("**Episodes**: %d\n\n", len(podcasts)))

	buf.WriteString("| ID | Title | Author | Duration | Plays |\n")
	buf.WriteString("|----|-------|--------|----------|-------|\n")
	for _, p := range podcasts {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %d |\n",
			p.ID, p.Title, p.AuthorName(), durationLabel(p), p.Plays))
	}

	return buf.Bytes(), nil
}

// PodcastsToText converts a podcast list to plain text.
func PodcastsToText(podcasts []models.Podcast) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Podcasts: %d\n\n", len(podcasts)))
	for i, p := range podcasts {
		buf.WriteString(fmt.Sprintf("%d. [%d] %s - %s", i+1, p.ID, p.AuthorName(), p.Title))
		if label := durationLabel(p); label != "" {
			buf.WriteString(fmt.Sprintf(" [%s]", label))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// StreamsToCSV converts a stream list to CSV with columns:
// ID, Title, Status, Viewers, TotalViews
func StreamsToCSV(streams []models.LiveStream) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Status", "Viewers", "TotalViews"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range streams {
		record := []string{
			strconv.Itoa(s.ID),
			s.Title,
			s.Status,
			strconv.Itoa(s.CurrentViewers),
			strconv.Itoa(s.TotalViews),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// StreamsToMarkdown converts a stream list to a Markdown table.
func StreamsToMarkdown(streams []models.LiveStream) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Live Streams\n\n")
	buf.WriteString(fmt.Sprintf("**Streams**: %d\n\n", len(streams)))

	buf.WriteString("| ID | Title | Status | Viewers |\n")
	buf.WriteString("|----|-------|--------|---------|\n")
	for _, s := range streams {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %d |\n",
			s.ID, s.Title, s.Status, s.CurrentViewers))
	}

	return buf.Bytes(), nil
}

// StreamsToText converts a stream list to plain text. Live streams are
// marked with an asterisk.
func StreamsToText(streams []models.LiveStream) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Live streams: %d\n\n", len(streams)))
	for i, s := range streams {
		marker := " "
		if s.IsLive() {
			marker = "*"
		}
		buf.WriteString(fmt.Sprintf("%d.%s [%d] %s (%s, %d watching)\n",
			i+1, marker, s.ID, s.Title, s.Status, s.CurrentViewers))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON renders a single podcast's metadata as indented JSON.
func ToMetadataJSON(podcast models.Podcast) ([]byte, error) {
	return shared.MarshalJSON(podcast, true)
}

func durationLabel(p models.Podcast) string {
	if p.DurationMinutes == nil {
		return ""
	}
	return shared.FormatDuration(*p.DurationMinutes * 60)
}
