package data

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/cdnstack/content-service/internal/content/biz"
)

func TestContentPOMapping(t *testing.T) {
	uploaded := time.Now().UTC().Add(-2 * time.Hour)
	modified := time.Now().UTC()

	content := &biz.Content{
		ID:            "test-id",
		Title:         "Annual Report",
		Description:   "Figures for the year",
		ContentType:   "document",
		OwnerID:       "owner-id",
		IsPublic:      false,
		Tags:          []string{"finance", "2026"},
		Metadata:      `{"department":"sales"}`,
		FilePath:      "uploads/abc_report.pdf",
		FileSize:      1024000,
		MimeType:      "application/pdf",
		DownloadCount: 42,
		UploadDate:    uploaded,
		LastModified:  modified,
	}

	po := toPO(content)

	if po.UploadDate != uploaded {
		t.Errorf("Expected UploadDate %v, got %v", uploaded, po.UploadDate)
	}
	if po.DownloadCount != 42 {
		t.Errorf("Expected DownloadCount 42, got %d", po.DownloadCount)
	}

	roundTripped := toDomain(po)

	if !reflect.DeepEqual(roundTripped, content) {
		t.Errorf("Round trip changed the record:\n got %+v\nwant %+v", roundTripped, content)
	}
}

func TestToDomainList(t *testing.T) {
	pos := []ContentPO{
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second"},
	}

	items := toDomainList(pos)

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ID != "a" || items[1].ID != "b" {
		t.Errorf("Order not preserved: %s, %s", items[0].ID, items[1].ID)
	}
}

func TestStringArrayJSONRoundTrip(t *testing.T) {
	tags := StringArrayJSON{"alpha", "beta"}

	value, err := tags.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	raw, ok := value.([]byte)
	if !ok {
		t.Fatalf("Expected []byte, got %T", value)
	}

	var decoded StringArrayJSON
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if !reflect.DeepEqual(decoded, tags) {
		t.Errorf("Expected %v, got %v", tags, decoded)
	}
}

func TestStringArrayJSONNilHandling(t *testing.T) {
	var tags StringArrayJSON

	value, err := tags.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var decoded []string
	if err := json.Unmarshal(value.([]byte), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("Expected empty array for nil slice, got %v", decoded)
	}

	var scanned StringArrayJSON
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if scanned == nil || len(scanned) != 0 {
		t.Errorf("Expected empty slice from NULL column, got %v", scanned)
	}
}

func TestSortColumnsCoverAllSortFields(t *testing.T) {
	fields := []string{
		biz.SortByUploadDate,
		biz.SortByLastModified,
		biz.SortByTitle,
		biz.SortByDownloadCount,
		biz.SortByFileSize,
	}

	for _, field := range fields {
		if _, ok := sortColumns[field]; !ok {
			t.Errorf("Sort field %q has no column mapping", field)
		}
	}

	if len(sortColumns) != len(fields) {
		t.Errorf("Expected %d column mappings, got %d", len(fields), len(sortColumns))
	}
}
