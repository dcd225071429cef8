package domain

import (
	"errors"
	"testing"
	"time"
)

func TestWorkout_Validate(t *testing.T) {
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		w      Workout
		fields []string
	}{
		{"valid planned", Workout{Status: StatusPlanned, WorkoutDate: today}, nil},
		{"future date", Workout{Status: StatusPlanned, WorkoutDate: today.AddDate(0, 0, 1)}, []string{"workout_date"}},
		{"completed without duration", Workout{Status: StatusCompleted, WorkoutDate: today}, []string{"duration"}},
		{"completed zero duration", Workout{Status: StatusCompleted, WorkoutDate: today, Duration: intPtr(0)}, []string{"duration"}},
		{"completed with duration", Workout{Status: StatusCompleted, WorkoutDate: today, Duration: intPtr(30)}, nil},
		{"zero distance", Workout{Status: StatusPlanned, WorkoutDate: today, Distance: floatPtr(0)}, []string{"distance"}},
		{"negative calories", Workout{Status: StatusPlanned, WorkoutDate: today, CaloriesBurned: floatPtr(-1)}, []string{"calories_burned"}},
		{
			"all at once",
			Workout{Status: StatusCompleted, WorkoutDate: today.AddDate(0, 0, 3), Distance: floatPtr(-2), CaloriesBurned: floatPtr(0)},
			[]string{"workout_date", "duration", "distance", "calories_burned"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.w.Validate(today)
			if len(tc.fields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tc.fields) {
				t.Fatalf("expected fields %v, got %v", tc.fields, verr.Fields)
			}
			for _, f := range tc.fields {
				if len(verr.Fields[f]) == 0 {
					t.Fatalf("missing error on %s: %v", f, verr.Fields)
				}
			}
		})
	}
}

func TestDate_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*3600)
	// 03:00 UTC on the 11th is still the 10th six hours west.
	got := Date(time.Date(2024, 1, 11, 3, 0, 0, 0, time.UTC), loc)
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Date = %v, want %v", got, want)
	}
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		if got := StartOfWeek(day); !got.Equal(monday) {
			t.Fatalf("StartOfWeek(%s) = %s", day.Weekday(), got)
		}
	}
}

func TestValidationError_Merge(t *testing.T) {
	a := &ValidationError{}
	a.Add("title", "This field is required.")
	b := &ValidationError{}
	b.Add("title", "Too long.")
	b.Add("notes", "Bad.")
	a.Merge(b)

	if len(a.Fields["title"]) != 2 || len(a.Fields["notes"]) != 1 {
		t.Fatalf("unexpected merge result %v", a.Fields)
	}
	if (&ValidationError{}).Err() != nil {
		t.Fatalf("empty ValidationError should yield nil")
	}
}
