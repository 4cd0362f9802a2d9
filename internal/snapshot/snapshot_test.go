package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleJSON = `{
  "user_id": "u1",
  "transactions": [
    {"id": "t1", "type": "expense", "amount": "42.50", "category_id": "food", "date": "2026-10-01"},
    {"type": "income", "amount": 1000, "date": "2026-10-02", "description": "Salary"}
  ],
  "categories": [
    {"id": "food", "name": "Food", "budget_amount": "300", "budget_period": "monthly", "is_active": true}
  ],
  "goals": [
    {"id": "g1", "target_amount": "500", "current_amount": "120", "status": "active", "start_date": "2026-01-01", "end_date": "2026-12-31"}
  ]
}`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if s.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", s.UserID)
	}
	if len(s.Transactions) != 2 || len(s.Categories) != 1 || len(s.Goals) != 1 {
		t.Fatalf("unexpected sizes: %d/%d/%d", len(s.Transactions), len(s.Categories), len(s.Goals))
	}
	if !s.Transactions[0].Amount.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("amount = %s, want 42.5", s.Transactions[0].Amount)
	}
	if s.Transactions[1].ID == "" {
		t.Error("expected an id to be assigned to the second transaction")
	}
	if s.Transactions[0].Date.String() != "2026-10-01" {
		t.Errorf("date = %s, want 2026-10-01", s.Transactions[0].Date)
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader("{not json")); err == nil {
		t.Error("expected error for malformed json")
	}
}

func TestValidate(t *testing.T) {
	bad := `{
  "transactions": [
    {"id": "t1", "type": "transfer", "amount": "-5", "date": "2026-10-01"},
    {"id": "t1", "type": "expense", "amount": "5", "date": "2026-10-01", "recurrence_interval": "hourly"}
  ],
  "categories": [
    {"id": "food", "name": "Food", "budget_amount": "-1", "budget_period": "daily"}
  ],
  "goals": [
    {"id": "g1", "status": "archived", "target_amount": "1", "current_amount": "0"}
  ]
}`
	_, err := Decode(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected validation error")
	}

	for _, want := range []string{
		`invalid type "transfer"`,
		"negative amount -5",
		`duplicate id "t1"`,
		`invalid recurrence interval "hourly"`,
		"negative budget -1",
		`invalid budget period "daily"`,
		`invalid status "archived"`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestValidate_MissingDate(t *testing.T) {
	raw := `{"transactions": [{"id": "t1", "type": "expense", "amount": "1"}]}`
	if _, err := Decode(strings.NewReader(raw)); err == nil || !strings.Contains(err.Error(), "invalid date") {
		t.Errorf("Decode() error = %v, want invalid date", err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := FileSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Transactions) != 2 {
		t.Errorf("len(Transactions) = %d, want 2", len(s.Transactions))
	}

	if _, err := (FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}).Load(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

type fakeFetcher struct {
	data           []byte
	err            error
	bucket, object string
}

func (f *fakeFetcher) Fetch(ctx context.Context, bucket, object string) ([]byte, error) {
	f.bucket, f.object = bucket, object
	return f.data, f.err
}

func TestGCSSource(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte(sampleJSON)}
	s, err := GCSSource{URI: "gs://budgets/users/u1/snapshot.json", Fetcher: fetcher}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if fetcher.bucket != "budgets" || fetcher.object != "users/u1/snapshot.json" {
		t.Errorf("fetched %s/%s", fetcher.bucket, fetcher.object)
	}
	if s.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", s.UserID)
	}

	failing := &fakeFetcher{err: errors.New("boom")}
	if _, err := (GCSSource{URI: "gs://b/o.json", Fetcher: failing}).Load(context.Background()); err == nil {
		t.Error("expected fetch error to propagate")
	}
}

func TestParseGCSURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"gs://bucket/path/to/file.json", "bucket", "path/to/file.json", false},
		{"gs://bucket", "", "", true},
		{"gs:///object", "", "", true},
		{"s3://bucket/file.json", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := ParseGCSURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGCSURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("ParseGCSURI(%q) = %q, %q", tt.uri, bucket, object)
			}
		})
	}
}
