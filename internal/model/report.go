package model

// Report types are derived on demand by the reporting engine and never
// persisted.  The raw *Count rows below are what the aggregation queries
// return; the service layer buckets and zero-fills them into the
// structures handed to the presentation layer.

// CategoryCount is one row of the courses-per-category query.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ModalityCount is one row of the sessions-per-modality query.  Modality
// is the raw value from sessions.modality and may contain legacy
// synonyms; the service collapses it into the fixed Online/Presenza set.
type ModalityCount struct {
	Modality string
	Count    int
}

// DifficultyCount is one row of the recipes-per-difficulty query,
// keyed by the raw 1..5 difficulty level.
type DifficultyCount struct {
	Difficulty int
	Count      int
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthCount is one row of a per-month grouped count query.
type MonthCount struct {
	YearMonth
	Count int
}

// SeriesPoint is one month of the rolling activity series returned to
// dashboards.  The series always spans exactly twelve months, oldest
// first, with empty months zero-filled.
type SeriesPoint struct {
	YearMonth
	Label    string `json:"label"`
	Courses  int    `json:"courses"`
	Sessions int    `json:"sessions"`
}

// MonthlyTotals carries the raw aggregate counters for one chef and
// month, as computed by the report queries before presentation.
type MonthlyTotals struct {
	Courses              int    // courses started in or overlapping the month
	OnlineSessions       int    // sessions held online in the month
	InPersonSessions     int    // practical sessions held in the month
	RecipesUsed          int    // session-recipe associations in the month
	Enrollments          int    // enrollments created in the month, any status
	ActiveEnrollments    int    // subset with status ATTIVA
	CompletedEnrollments int    // subset with status COMPLETATA
	CancelledEnrollments int    // subset with status ANNULLATA
	RevenueCents         uint64 // Σ course price over ATTIVA/COMPLETATA enrollments
}

// MonthlyReport is the full statistics snapshot for a chef and calendar
// month.  It is rebuilt from entity state on every request.
type MonthlyReport struct {
	Month                int            `json:"month"`
	Year                 int            `json:"year"`
	ChefName             string         `json:"chef_name"`
	Courses              int            `json:"courses"`
	OnlineSessions       int            `json:"online_sessions"`
	InPersonSessions     int            `json:"in_person_sessions"`
	RecipesUsed          int            `json:"recipes_used"`
	Enrollments          int            `json:"enrollments"`
	ActiveEnrollments    int            `json:"active_enrollments"`
	CompletedEnrollments int            `json:"completed_enrollments"`
	CancelledEnrollments int            `json:"cancelled_enrollments"`
	RevenueCents         uint64         `json:"revenue_cents"`
	CoursesByCategory    map[string]int `json:"courses_by_category"`
	SessionsByModality   map[string]int `json:"sessions_by_modality"`
	RecipesByDifficulty  map[string]int `json:"recipes_by_difficulty"`
}
