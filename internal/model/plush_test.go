package model

import (
	"encoding/json"
	"testing"
)

func TestFilterResponseFlattensEnvelope(t *testing.T) {
	res := FilterResponse{
		Filters:      FilterInputs{Characters: []string{"Snorlax"}},
		PageEnvelope: PageEnvelope{Limit: 10, TotalPages: 1, CurrentPage: 1, Results: []Plush{}},
	}

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"filters", "skip", "total_pages", "current_page", "limit", "results"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("envelope key %q must be at the top level: %s", key, raw)
		}
	}
}
