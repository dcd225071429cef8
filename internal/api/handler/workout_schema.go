package handler

import "time"

// errorResponse is the standard error envelope returned on non-field 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createWorkoutRequest struct {
	WorkoutType    string   `json:"workout_type"    validate:"omitempty,oneof=running cycling swimming walking gym yoga pilates hiit cardio strength sports other"`
	Title          string   `json:"title"           validate:"required,max=200"`
	Description    *string  `json:"description"`
	Duration       *int     `json:"duration"        validate:"omitempty,gte=0,lte=2147483647"`
	CaloriesBurned *float64 `json:"calories_burned" validate:"omitempty,lte=9999.99"`
	Distance       *float64 `json:"distance"        validate:"omitempty,lte=9999.99"`
	Intensity      string   `json:"intensity"       validate:"omitempty,oneof=low medium high"`
	Status         string   `json:"status"          validate:"omitempty,oneof=planned in_progress completed skipped"`
	Notes          *string  `json:"notes"`
	WorkoutDate    string   `json:"workout_date"    validate:"required,datetime=2006-01-02"`
}

// updateWorkoutRequest serves both PUT and PATCH. Absent fields are nil.
type updateWorkoutRequest struct {
	WorkoutType    *string    `json:"workout_type"    validate:"omitempty,oneof=running cycling swimming walking gym yoga pilates hiit cardio strength sports other"`
	Title          *string    `json:"title"           validate:"omitnil,min=1,max=200"`
	Description    *string    `json:"description"`
	Duration       *int       `json:"duration"        validate:"omitempty,gte=0,lte=2147483647"`
	CaloriesBurned *float64   `json:"calories_burned" validate:"omitempty,lte=9999.99"`
	Distance       *float64   `json:"distance"        validate:"omitempty,lte=9999.99"`
	Intensity      *string    `json:"intensity"       validate:"omitempty,oneof=low medium high"`
	Status         *string    `json:"status"          validate:"omitempty,oneof=planned in_progress completed skipped"`
	Notes          *string    `json:"notes"`
	WorkoutDate    *string    `json:"workout_date"    validate:"omitempty,datetime=2006-01-02"`
	StartedAt      *time.Time `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

type completeWorkoutRequest struct {
	Duration       *int     `json:"duration"        validate:"omitempty,gte=0,lte=2147483647"`
	CaloriesBurned *float64 `json:"calories_burned" validate:"omitempty,gte=0,lte=9999.99"`
	Distance       *float64 `json:"distance"        validate:"omitempty,gte=0,lte=9999.99"`
}

// --- Response types ---

type workoutResponse struct {
	ID              string     `json:"id"`
	User            string     `json:"user"`
	WorkoutType     string     `json:"workout_type"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Duration        *int       `json:"duration"`
	DurationDisplay string     `json:"duration_display"`
	CaloriesBurned  *float64   `json:"calories_burned"`
	Distance        *float64   `json:"distance"`
	Intensity       string     `json:"intensity"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes"`
	WorkoutDate     string     `json:"workout_date"`
	StartedAt       *time.Time `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type summaryResponse struct {
	TotalWorkouts     int64            `json:"total_workouts"`
	TotalDuration     int64            `json:"total_duration"`
	TotalCalories     float64          `json:"total_calories"`
	TotalDistance     float64          `json:"total_distance"`
	CompletedWorkouts int64            `json:"completed_workouts"`
	WorkoutTypes      map[string]int64 `json:"workout_types"`
}

type workoutEventResponse struct {
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
