package output_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/example/gtmscan/internal/model"
	"github.com/example/gtmscan/internal/output"
)

func sampleResults() model.ResultSet {
	ok := 200
	return model.ResultSet{
		{
			URL:          "https://example.com",
			GTMFound:     true,
			Emails:       []string{"info@example.com", "sales@example.com"},
			Phones:       []string{"(415) 555-0100"},
			ContactLinks: []string{"https://example.com/about"},
			Status:       "Success",
			HTTPStatus:   &ok,
		},
		{
			URL:          "https://plain.example",
			GTMFound:     false,
			Emails:       []string{},
			Phones:       []string{},
			ContactLinks: []string{},
			Status:       "No GTM found",
			HTTPStatus:   &ok,
		},
		{
			URL:          "https://down.example",
			GTMFound:     false,
			Emails:       []string{},
			Phones:       []string{},
			ContactLinks: []string{},
			Status:       "Error: context deadline exceeded",
			HTTPStatus:   nil,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := output.WriteCSV(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d records", len(records))
	}

	wantHeader := []string{"url", "gtm_found", "emails", "phones", "contact_links", "status", "http_status"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	first := records[1]
	if first[0] != "https://example.com" || first[1] != "true" {
		t.Errorf("unexpected first row: %v", first)
	}
	if first[2] != "info@example.com; sales@example.com" {
		t.Errorf("emails cell = %q", first[2])
	}
	if first[6] != "200" {
		t.Errorf("http_status cell = %q", first[6])
	}

	failed := records[3]
	if failed[1] != "false" || failed[6] != "" {
		t.Errorf("failed row should have false/empty status code: %v", failed)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := output.WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := output.WriteXLSX(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "https://example.com" {
		t.Errorf("first data row url = %q", rows[1][0])
	}
	if rows[1][1] != "true" {
		t.Errorf("first data row gtm_found = %q", rows[1][1])
	}
}

func TestWriteReport(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := output.WriteReport(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		"Total Scanned: 3",
		"GTM Found: 1",
		"Success Rate: 33.3%",
		"URL: https://example.com",
		"  - info@example.com",
		"  - (415) 555-0100",
		"  - https://example.com/about",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "https://plain.example") {
		t.Error("non-GTM results should not appear in the detail section")
	}
}
