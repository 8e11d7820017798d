package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    TaskStatus
		wantErr bool
	}{
		{input: "To-Do", want: StatusTodo},
		{input: "In Progress", want: StatusInProgress},
		{input: "Review", want: StatusReview},
		{input: "Complete", want: StatusComplete},
		{input: "Done", wantErr: true},
		{input: "complete", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStatus(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() >= PriorityMedium.Rank() {
		t.Error("High must rank before Medium")
	}
	if PriorityMedium.Rank() >= PriorityLow.Rank() {
		t.Error("Medium must rank before Low")
	}
}

func TestNoteClone(t *testing.T) {
	now := time.Now()
	original := &Note{
		Id:            uuid.New(),
		Title:         "original",
		Tags:          []string{"a"},
		AssignedUsers: []uuid.UUID{uuid.New()},
		CompletedTime: &now,
	}

	clone := original.Clone()
	clone.Tags[0] = "mutated"
	clone.AssignedUsers[0] = uuid.New()
	*clone.CompletedTime = now.Add(time.Hour)

	if original.Tags[0] != "a" {
		t.Error("clone shares tags backing array")
	}
	if original.AssignedUsers[0] == clone.AssignedUsers[0] {
		t.Error("clone shares assigned users backing array")
	}
	if !original.CompletedTime.Equal(now) {
		t.Error("clone shares completed time pointer")
	}

	var nilNote *Note
	if nilNote.Clone() != nil {
		t.Error("cloning nil must return nil")
	}
}
