package lesson_test

import (
	"testing"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// TestShortTime tests trimming API times to HH:MM.
func TestShortTime(t *testing.T) {
	tests := map[string]string{
		"09:30:00": "09:30",
		"18:05":    "18:05",
		"":         "",
	}
	for in, want := range tests {
		if got := lesson.ShortTime(in); got != want {
			t.Errorf("ShortTime(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestLesson_StatusClass tests badge classes with a draft fallback.
func TestLesson_StatusClass(t *testing.T) {
	if got := (lesson.Lesson{Status: lesson.StatusExecuted}).StatusClass(); got != "status-executed" {
		t.Errorf("StatusClass() = %q", got)
	}
	if got := (lesson.Lesson{Status: "cancelled"}).StatusClass(); got != "status-draft" {
		t.Errorf("StatusClass() = %q, want status-draft", got)
	}
}

// TestInput_Validate tests the player requirement for non-club lessons.
func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      lesson.Input
		wantErr bool
	}{
		{name: "private without players", in: lesson.Input{Type: lesson.TypePrivate}, wantErr: true},
		{name: "group without players", in: lesson.Input{Type: lesson.TypeGroup}, wantErr: true},
		{name: "club without players", in: lesson.Input{Type: lesson.TypeClub}},
		{name: "private with player", in: lesson.Input{Type: lesson.TypePrivate, PlayerIDs: []int{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != lesson.ErrPlayersRequired {
				t.Errorf("Validate() = %v, want ErrPlayersRequired", err)
			}
		})
	}
}

// TestLesson_Accessors tests id and name helpers.
func TestLesson_Accessors(t *testing.T) {
	l := lesson.Lesson{
		StartTime: "10:00:00",
		EndTime:   "11:00:00",
		Players:   []player.Ref{{ID: 2, FullName: "Ana"}, {ID: 5, FullName: "Ben"}},
		Strokes:   []lesson.Stroke{{Code: "fh", Label: "Forehand"}},
	}
	if l.Start() != "10:00" || l.End() != "11:00" {
		t.Errorf("Start/End = %s/%s", l.Start(), l.End())
	}
	if l.PlayerNames() != "Ana, Ben" {
		t.Errorf("PlayerNames() = %q", l.PlayerNames())
	}
	if ids := l.PlayerIDs(); len(ids) != 2 || ids[1] != 5 {
		t.Errorf("PlayerIDs() = %v", ids)
	}
	if codes := l.StrokeCodes(); len(codes) != 1 || codes[0] != "fh" {
		t.Errorf("StrokeCodes() = %v", codes)
	}
	if len(l.CourtIDs()) != 0 {
		t.Errorf("CourtIDs() = %v", l.CourtIDs())
	}
}
