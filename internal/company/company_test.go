package company

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRef(t *testing.T) {
	tests := []struct {
		in   string
		slug string
		url  string
	}{
		{"hcltech", "hcltech", "https://www.linkedin.com/company/hcltech/"},
		{"  HCLTech \n", "hcltech", "https://www.linkedin.com/company/hcltech/"},
		{"ini8-labs", "ini8-labs", "https://www.linkedin.com/company/ini8-labs/"},
	}
	for _, tt := range tests {
		ref, err := NewRef(tt.in)
		if err != nil {
			t.Fatalf("NewRef(%q): %v", tt.in, err)
		}
		if ref.Slug != tt.slug || ref.URL != tt.url {
			t.Errorf("NewRef(%q) = %+v, want slug=%q url=%q", tt.in, ref, tt.slug, tt.url)
		}
	}
}

func TestNewRef_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		if _, err := NewRef(in); !errors.Is(err, ErrEmptySlug) {
			t.Errorf("NewRef(%q) err = %v, want ErrEmptySlug", in, err)
		}
	}
}

func TestRecord_RowRoundTrip(t *testing.T) {
	rec := Record{
		Name:         "HCLTech",
		Website:      "hcltech.com",
		Phone:        "1234567890",
		CompanySize:  "10,001+ employees",
		Headquarters: "Noida, Uttar Pradesh",
		URL:          "https://www.linkedin.com/company/hcltech/",
	}

	want := []string{"HCLTech", "hcltech.com", "1234567890", "10,001+ employees", "Noida, Uttar Pradesh", "https://www.linkedin.com/company/hcltech/"}
	if got := rec.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v", got)
	}

	header := []string{ColURL, "Extra", ColName}
	row := rec.Row(header)
	if !reflect.DeepEqual(row, []string{rec.URL, "", rec.Name}) {
		t.Errorf("Row() = %v", row)
	}

	back := RecordFromRow(header, row)
	if back.URL != rec.URL || back.Name != rec.Name || back.Phone != "" {
		t.Errorf("RecordFromRow() = %+v", back)
	}
}

func TestNewRecord_AllUnknown(t *testing.T) {
	rec := NewRecord("u")
	for _, c := range Columns[:len(Columns)-1] {
		if v, _ := rec.Field(c); v != Unknown {
			t.Errorf("%s = %q, want %q", c, v, Unknown)
		}
	}
	if rec.URL != "u" {
		t.Errorf("URL = %q", rec.URL)
	}
}
