package domain

// Summary aggregates a caller's workouts over an optional date range.
type Summary struct {
	TotalWorkouts     int64                 `json:"total_workouts"`
	TotalDuration     int64                 `json:"total_duration"`
	TotalCalories     float64               `json:"total_calories"`
	TotalDistance     float64               `json:"total_distance"`
	CompletedWorkouts int64                 `json:"completed_workouts"`
	WorkoutTypes      map[WorkoutType]int64 `json:"workout_types"`
}
