package transcript

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSegmentDurationJSON(t *testing.T) {
	seg := Segment{Speaker: "SPEAKER_00", Start: 1.5, End: 4.0, Text: "hello"}

	b, err := json.Marshal(seg)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["duration"] != 2.5 {
		t.Errorf("duration = %v, want 2.5", raw["duration"])
	}

	var back Segment
	if err := json.Unmarshal([]byte(`{"speaker":"A","start":1,"end":3,"text":"x","duration":99}`), &back); err != nil {
		t.Fatal(err)
	}
	if back.Duration() != 2 {
		t.Errorf("Duration() = %v, want 2 (input duration must be ignored)", back.Duration())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		tr      Transcript
		wantErr bool
	}{
		{"empty", nil, false},
		{"ordered", Transcript{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 1, End: 1.5}}, false},
		{"end before start", Transcript{{Start: 2, End: 1}}, true},
		{"out of order", Transcript{{Start: 3, End: 4}, {Start: 1, End: 2}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tr.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	tr := Transcript{
		{Speaker: "A", Start: 0, End: 2, Text: "hello there friend"},
		{Speaker: "A", Start: 2, End: 3, Text: "yes"},
		{Speaker: "B", Start: 3, End: 7, Text: "good morning"},
		{Speaker: "A", Start: 7, End: 9, Text: "ok then"},
	}
	st := ComputeStats(tr)

	if len(st.Speakers) != 2 || st.Speakers[0].Speaker != "A" {
		t.Fatalf("Speakers = %+v", st.Speakers)
	}
	a := st.Speakers[0]
	if a.Segments != 3 || a.TotalWords != 6 || a.TotalDuration != 5 {
		t.Errorf("A stats = %+v", a)
	}
	if math.Abs(a.Share-5.0/9.0) > 1e-9 {
		t.Errorf("A share = %v", a.Share)
	}
	if a.AvgWords() != 2 {
		t.Errorf("A AvgWords = %v, want 2", a.AvgWords())
	}

	if len(st.Turns) != 3 {
		t.Fatalf("Turns = %+v, want 3", st.Turns)
	}
	if st.Turns[0].End != 3 || st.Turns[1].Speaker != "B" || st.Turns[2].Duration() != 2 {
		t.Errorf("Turns = %+v", st.Turns)
	}

	if got := tr.Speakers(); len(got) != 2 || got[1] != "B" {
		t.Errorf("Speakers() = %v", got)
	}
}
