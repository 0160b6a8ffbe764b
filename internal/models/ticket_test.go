package models

import (
	"encoding/json"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"Pending", StatusPending, false},
		{"pending", StatusPending, false},
		{"  PENDING  ", StatusPending, false},
		{"In Progress", StatusInProgress, false},
		{"in_progress", StatusInProgress, false},
		{"IN PROGRESS", StatusInProgress, false},
		{"Resolved", StatusResolved, false},
		{"closed", StatusClosed, false},
		{"CLOSED", StatusClosed, false},
		{"", -1, true},
		{"Done", -1, true},
		{"In-Progress", -1, true},
	}

	for _, c := range cases {
		got, err := ParseStatus(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseStatus(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseStatus(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"Maintenance & Repairs", CategoryMaintenanceAndRepairs, false},
		{"maintenance & repairs", CategoryMaintenanceAndRepairs, false},
		{"Security & Safety", CategorySecurityAndSafety, false},
		{"UTILITIES", CategoryUtilities, false},
		{"Payment & Billing", CategoryPaymentAndBilling, false},
		{"Amenities & Facilities", CategoryAmenitiesAndFacilities, false},
		{"others", CategoryOthers, false},
		{"", -1, true},
		{"Plumbing", -1, true},
	}

	for _, c := range cases {
		got, err := ParseCategory(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseCategory(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCategory(%q) returned error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseCategory(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestStatusJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(StatusInProgress)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(b) != `"In Progress"` {
		t.Fatalf("Marshal = %s, want %q", b, "In Progress")
	}

	var s Status
	if err := json.Unmarshal([]byte(`"in_progress"`), &s); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if s != StatusInProgress {
		t.Fatalf("Unmarshal = %v, want StatusInProgress", s)
	}

	if err := json.Unmarshal([]byte(`"nope"`), &s); err == nil {
		t.Fatal("Expected error unmarshalling unknown status label, got none")
	}
}

func TestCategoryJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(CategoryPaymentAndBilling)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	// Marshal HTML-escapes the ampersand, so compare via decode.
	var label string
	if err := json.Unmarshal(b, &label); err != nil {
		t.Fatalf("Unmarshal label returned error: %v", err)
	}
	if label != "Payment & Billing" {
		t.Fatalf("label = %q, want %q", label, "Payment & Billing")
	}

	var c Category
	if err := json.Unmarshal([]byte(`"payment & billing"`), &c); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if c != CategoryPaymentAndBilling {
		t.Fatalf("Unmarshal = %v, want CategoryPaymentAndBilling", c)
	}
}
