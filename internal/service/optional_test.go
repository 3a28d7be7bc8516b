package service

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringDistinguishesOmittedAndNull(t *testing.T) {
	type payload struct {
		EndDate OptionalString `json:"endDate"`
	}

	var omitted payload
	if err := json.Unmarshal([]byte(`{}`), &omitted); err != nil {
		t.Fatalf("unmarshal omitted: %v", err)
	}
	if omitted.EndDate.Set {
		t.Fatal("omitted field should not be marked set")
	}

	var null payload
	if err := json.Unmarshal([]byte(`{"endDate": null}`), &null); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !null.EndDate.Set || null.EndDate.Value != nil {
		t.Fatalf("explicit null should be set with nil value: %+v", null.EndDate)
	}

	var present payload
	if err := json.Unmarshal([]byte(`{"endDate": "2025-01-31"}`), &present); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !present.EndDate.Set || present.EndDate.Value == nil || *present.EndDate.Value != "2025-01-31" {
		t.Fatalf("unexpected decoded value: %+v", present.EndDate)
	}
}
