package formatter

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/desertthunder/podx/internal/models"
)

func samplePodcasts() []models.Podcast {
	author := "Dr. Who"
	duration := 45
	return []models.Podcast{
		{ID: 1, Title: "Intro to Algorithms", Author: &author, DurationMinutes: &duration, Plays: 12, UploadedAt: "2026-01-15T10:00:00"},
		{ID: 2, Title: "Untitled Session", Plays: 0},
	}
}

func sampleStreams() []models.LiveStream {
	return []models.LiveStream{
		{ID: 1, Title: "Office Hours", Status: models.StreamLive, CurrentViewers: 8, TotalViews: 120},
		{ID: 2, Title: "Rerun", Status: models.StreamOffline},
	}
}

func TestPodcastFormats(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		t.Run("Header and Records", func(t *testing.T) {
			data, err := PodcastsToCSV(samplePodcasts())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
			if err != nil {
				t.Fatalf("output is not valid CSV: %v", err)
			}
			if len(records) != 3 {
				t.Fatalf("expected header plus 2 records, got %d rows", len(records))
			}
			if records[0][0] != "ID" || records[0][1] != "Title" {
				t.Errorf("unexpected header: %v", records[0])
			}
			if records[1][1] != "Intro to Algorithms" || records[1][2] != "Dr. Who" {
				t.Errorf("unexpected record: %v", records[1])
			}
			if records[1][3] != "45:00" {
				t.Errorf("expected duration '45:00', got %q", records[1][3])
			}
		})

		t.Run("Missing Author Falls Back", func(t *testing.T) {
			data, err := PodcastsToCSV(samplePodcasts())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			records, _ := csv.NewReader(strings.NewReader(string(data))).ReadAll()
			if records[2][2] != "Unknown" {
				t.Errorf("expected fallback author 'Unknown', got %q", records[2][2])
			}
			if records[2][3] != "" {
				t.Errorf("expected empty duration, got %q", records[2][3])
			}
		})

		t.Run("Empty List", func(t *testing.T) {
			data, err := PodcastsToCSV(nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			records, _ := csv.NewReader(strings.NewReader(string(data))).ReadAll()
			if len(records) != 1 {
				t.Errorf("expected header only, got %d rows", len(records))
			}
		})
	})

	t.Run("Markdown", func(t *testing.T) {
		data, err := PodcastsToMarkdown(samplePodcasts())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := string(data)
		if !strings.HasPrefix(out, "# Podcasts") {
			t.Error("expected markdown heading")
		}
		if !strings.Contains(out, "**Episodes**: 2") {
			t.Error("expected episode count")
		}
		if !strings.Contains(out, "| 1 | Intro to Algorithms | Dr. Who | 45:00 | 12 |") {
			t.Errorf("expected table row, got:\n%s", out)
		}
	})

	t.Run("Text", func(t *testing.T) {
		data, err := PodcastsToText(samplePodcasts())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := string(data)
		if !strings.Contains(out, "Podcasts: 2") {
			t.Error("expected count line")
		}
		if !strings.Contains(out, "1. [1] Dr. Who - Intro to Algorithms [45:00]") {
			t.Errorf("unexpected first line:\n%s", out)
		}
		if !strings.Contains(out, "2. [2] Unknown - Untitled Session") {
			t.Errorf("unexpected second line:\n%s", out)
		}
	})
}

func TestStreamFormats(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		data, err := StreamsToCSV(sampleStreams())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header plus 2 records, got %d rows", len(records))
		}
		if records[1][2] != "live" || records[1][3] != "8" {
			t.Errorf("unexpected record: %v", records[1])
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		data, err := StreamsToMarkdown(sampleStreams())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := string(data)
		if !strings.Contains(out, "| 1 | Office Hours | live | 8 |") {
			t.Errorf("expected table row, got:\n%s", out)
		}
	})

	t.Run("Text Marks Live Streams", func(t *testing.T) {
		data, err := StreamsToText(sampleStreams())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := string(data)
		if !strings.Contains(out, "1.* [1] Office Hours (live, 8 watching)") {
			t.Errorf("expected live marker, got:\n%s", out)
		}
		if !strings.Contains(out, "2.  [2] Rerun (offline, 0 watching)") {
			t.Errorf("expected offline line, got:\n%s", out)
		}
	})
}

func TestToMetadataJSON(t *testing.T) {
	data, err := ToMetadataJSON(samplePodcasts()[0])
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["title"] != "Intro to Algorithms" {
		t.Errorf("expected title in metadata, got %v", decoded["title"])
	}
}
