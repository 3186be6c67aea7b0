package analytics

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToSeries_EmptyMapping(t *testing.T) {
	got := ToSeries(Counts{})
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no points, got %d", len(got))
	}
}

func TestToSeries_PreservesInsertionOrder(t *testing.T) {
	got := ToSeries(Counts{{Key: "a", Value: 1}, {Key: "b", Value: 2}})

	want := []Point{{Key: "a", Value: 1}, {Key: "b", Value: 2}}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestToGeoSeries_Percentages(t *testing.T) {
	got := ToGeoSeries(Counts{{Key: "US", Value: 10}, {Key: "IN", Value: 5}}, 15)

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Country != "US" || got[0].Percentage != 66.7 {
		t.Errorf("US: got %+v, want percentage 66.7", got[0])
	}
	if got[1].Country != "IN" || got[1].Percentage != 33.3 {
		t.Errorf("IN: got %+v, want percentage 33.3", got[1])
	}
}

func TestToGeoSeries_ZeroTotalClicks(t *testing.T) {
	if got := ToGeoSeries(Counts{}, 0); len(got) != 0 {
		t.Errorf("empty mapping should yield empty series, got %d", len(got))
	}

	// Zero total with data present must not panic; the NaN is left for the
	// renderer to guard.
	got := ToGeoSeries(Counts{{Key: "US", Value: 3}}, 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if !math.IsInf(got[0].Percentage, 1) && !math.IsNaN(got[0].Percentage) {
		t.Errorf("expected non-finite percentage, got %v", got[0].Percentage)
	}
}

func TestTopLocation(t *testing.T) {
	tests := []struct {
		name   string
		series []GeoPoint
		want   GeoPoint
	}{
		{
			"empty series returns sentinel",
			nil,
			GeoPoint{Country: "N/A", Value: 0},
		},
		{
			"picks the max",
			[]GeoPoint{{Country: "US", Value: 10}, {Country: "IN", Value: 20}},
			GeoPoint{Country: "IN", Value: 20},
		},
		{
			"first max wins ties",
			[]GeoPoint{{Country: "BR", Value: 7}, {Country: "DE", Value: 7}},
			GeoPoint{Country: "BR", Value: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopLocation(tt.series)
			if got.Country != tt.want.Country || got.Value != tt.want.Value {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTopN(t *testing.T) {
	links := []TopLink{
		{Slug: "a", Clicks: 30},
		{Slug: "b", Clicks: 20},
		{Slug: "c", Clicks: 10},
	}

	if got := TopN(links, 2); len(got) != 2 || got[0].Slug != "a" || got[1].Slug != "b" {
		t.Errorf("TopN(2): got %+v", got)
	}
	if got := TopN(links, 5); len(got) != 3 {
		t.Errorf("TopN past end should clamp, got %d", len(got))
	}
	if got := TopN(nil, 5); len(got) != 0 {
		t.Errorf("TopN of nil should be empty, got %d", len(got))
	}
	if got := TopN(links, -1); len(got) != 0 {
		t.Errorf("negative n should be empty, got %d", len(got))
	}
}

func TestCounts_UnmarshalPreservesServerOrder(t *testing.T) {
	// Keys deliberately not in lexical order.
	raw := `{"Chrome":12,"Brave":3,"Firefox":7}`

	var c Counts
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatal(err)
	}

	want := Counts{{Key: "Chrome", Value: 12}, {Key: "Brave", Value: 3}, {Key: "Firefox", Value: 7}}
	if len(c) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(c))
	}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, c[i], want[i])
		}
	}
}

func TestCounts_UnmarshalEdgeCases(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var c Counts
		if err := json.Unmarshal([]byte(`{}`), &c); err != nil {
			t.Fatal(err)
		}
		if c == nil || len(c) != 0 {
			t.Errorf("expected empty non-nil counts, got %#v", c)
		}
	})

	t.Run("null reads as empty", func(t *testing.T) {
		var c Counts
		if err := json.Unmarshal([]byte(`null`), &c); err != nil {
			t.Fatal(err)
		}
		if c == nil || len(c) != 0 {
			t.Errorf("expected empty non-nil counts, got %#v", c)
		}
	})

	t.Run("rejects arrays", func(t *testing.T) {
		var c Counts
		if err := json.Unmarshal([]byte(`[1,2]`), &c); err == nil {
			t.Error("expected error for non-object input")
		}
	})
}

func TestAggregate_MissingOptionalFields(t *testing.T) {
	// Per-link payloads have no topLinks; a minimal payload must decode with
	// empty series, not errors.
	raw := `{"slug":"abc","longURL":"https://example.com","totalClicks":0,
		"clicksByDate":{},"browsers":{},"referrers":{},"geo":{},
		"aiSummary":"","createdAt":"2025-01-15T12:00:00Z"}`

	var agg Aggregate
	if err := json.Unmarshal([]byte(raw), &agg); err != nil {
		t.Fatal(err)
	}

	if len(ToSeries(agg.ClicksByDate)) != 0 {
		t.Error("expected empty date series")
	}
	if got := ToGeoSeries(agg.Geo, agg.TotalClicks); len(got) != 0 {
		t.Errorf("expected empty geo series, got %d", len(got))
	}
	if top := TopLocation(ToGeoSeries(agg.Geo, agg.TotalClicks)); top.Country != "N/A" {
		t.Errorf("expected sentinel location, got %+v", top)
	}
}

func TestCounts_MarshalRoundTrip(t *testing.T) {
	in := Counts{{Key: "2025-01-01", Value: 5}, {Key: "2025-01-02", Value: 0}}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out Counts
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip changed data: %+v", out)
	}
}
