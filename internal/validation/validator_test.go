// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package validation

import (
	"strings"
	"testing"
)

type ratingsRequest struct {
	Ratings map[int]int `json:"ratings" validate:"dive,keys,gt=0,endkeys,min=1,max=5"`
}

type itemRecord struct {
	ID    int    `json:"id" validate:"gt=0"`
	Title string `json:"title" validate:"required,max=10"`
	Kind  string `json:"kind" validate:"omitempty,oneof=movie show"`
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     interface{}
		wantValid bool
		wantField string
		wantMsg   string
	}{
		{"valid ratings", &ratingsRequest{Ratings: map[int]int{1: 5, 2: 1}}, true, "", ""},
		{"empty ratings", &ratingsRequest{Ratings: map[int]int{}}, true, "", ""},
		{"score too high", &ratingsRequest{Ratings: map[int]int{7: 6}}, false, "ratings[7]", "ratings[7] must be at most 5"},
		{"zero score", &ratingsRequest{Ratings: map[int]int{7: 0}}, false, "ratings[7]", "ratings[7] must be at least 1"},
		{"bad key", &ratingsRequest{Ratings: map[int]int{-3: 4}}, false, "ratings[-3]", "must be greater than 0"},
		{"valid item", &itemRecord{ID: 1, Title: "Up"}, true, "", ""},
		{"missing title", &itemRecord{ID: 1}, false, "title", "title is required"},
		{"long title", &itemRecord{ID: 1, Title: "Interstellar"}, false, "title", "title must be at most 10 characters"},
		{"bad kind", &itemRecord{ID: 1, Title: "Up", Kind: "book"}, false, "kind", "kind must be one of: movie show"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(tt.input)
			if tt.wantValid {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			first := verr.Errors()[0]
			if first.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", first.Field(), tt.wantField)
			}
			if !strings.Contains(first.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want to contain %q", first.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&itemRecord{ID: 1})
	apiErr := single.ToAPIError()
	if apiErr.Code != CodeValidationFailed {
		t.Errorf("Code = %q, want %q", apiErr.Code, CodeValidationFailed)
	}
	if apiErr.Details["field"] != "title" {
		t.Errorf("Details[field] = %v, want title", apiErr.Details["field"])
	}

	multi := ValidateStruct(&itemRecord{ID: 0})
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Message = %q, want joined messages", apiErr.Message)
	}

	empty := &RequestValidationError{}
	if empty.ToAPIError().Message != "Validation failed" {
		t.Errorf("empty ToAPIError().Message = %q", empty.ToAPIError().Message)
	}
}
