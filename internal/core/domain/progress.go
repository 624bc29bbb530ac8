package domain

// Result records for the progress computations. Each read endpoint returns
// one of these shapes; nothing here is persisted.

// HabitSummary is one row of the weekly summary: how many days the habit was
// completed inside the reporting window. Habits with zero completions still
// appear with DaysCompleted == 0.
type HabitSummary struct {
	HabitID       string `json:"habit_id"`
	HabitName     string `json:"habit_name"`
	DaysCompleted int    `json:"days_completed"`
}

// WeeklySummary covers the inclusive window [EndDate-7d, EndDate].
type WeeklySummary struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Habits    []HabitSummary `json:"habits"`
}

// CompletionReport covers habits created in the current month. Percentage is
// rounded to two decimals and defined as 0 when TotalHabits is 0.
type CompletionReport struct {
	TotalHabits     int     `json:"total_habits"`
	CompletedHabits int     `json:"completed_habits"`
	Percentage      float64 `json:"percentage"`
}

// FrequencyMap is a completion histogram keyed by "YYYY-MM-DD". Only dates
// with at least one completion appear.
type FrequencyMap map[string]int

// ProgressCalendar maps every day of one month (1..lastDay) to the names of
// the habits completed on that day. Days without completions map to an empty
// list, so the key set always covers the whole month.
type ProgressCalendar struct {
	Month int              `json:"month"`
	Year  int              `json:"year"`
	Days  map[int][]string `json:"days"`
}

// Reward is a milestone badge earned at a specific streak value.
type Reward struct {
	Streak int    `json:"streak"`
	Badge  string `json:"badge"`
}
