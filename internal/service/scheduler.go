package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/foodlab/foodlab-api/internal/model"
	"github.com/foodlab/foodlab-api/internal/repository"
)

// Timetable generation limits.
const (
	MaxSessionCount    = 50
	MaxDurationHours   = 8
	MaxParticipants    = 50
	defaultSessionMins = 120
)

// SchedulerService creates courses together with their generated
// timetable. The course row and all session rows are inserted in one
// transaction, so a course can never exist with a partial timetable.
type SchedulerService struct {
	courses    *repository.CourseRepo
	sessions   *repository.SessionRepo
	categories *repository.CategoryRepo
	recipes    *repository.RecipeRepo

	now func() time.Time
}

// NewSchedulerService returns a SchedulerService over the given repositories.
func NewSchedulerService(courses *repository.CourseRepo, sessions *repository.SessionRepo, categories *repository.CategoryRepo, recipes *repository.RecipeRepo) *SchedulerService {
	return &SchedulerService{courses: courses, sessions: sessions, categories: categories, recipes: recipes, now: time.Now}
}

// BuildSchedule lays out a course's sessions from its start date,
// frequency and session count. Sessions alternate modality starting
// with a practical one: odd sequence numbers are in-person practical
// sessions, even ones are online theory sessions. Dates advance by the
// frequency's day step; unrecognised frequencies fall back to weekly.
// The first session always lands on the start date itself. Every
// generated session lasts 120 minutes regardless of the course's
// duration_hours; chefs adjust individual sessions afterwards.
func BuildSchedule(c model.Course) []model.Session {
	if c.SessionCount <= 0 {
		return nil
	}
	step := c.Frequency.Step()
	sessions := make([]model.Session, 0, c.SessionCount)
	for i := 1; i <= c.SessionCount; i++ {
		s := model.Session{
			CourseID:        c.ID,
			SequenceNumber:  i,
			Date:            c.StartDate.AddDate(0, 0, (i-1)*step),
			DurationMinutes: defaultSessionMins,
		}
		if i%2 == 1 {
			s.Modality = model.ModalityInPerson
			s.Title = "Sessione Pratica " + strconv.Itoa(i)
			s.Description = "Sessione pratica con preparazione di ricette"
		} else {
			s.Modality = model.ModalityOnline
			s.Title = "Sessione Teorica " + strconv.Itoa(i)
			s.Description = "Sessione teorica online"
		}
		sessions = append(sessions, s)
	}
	return sessions
}

// ValidateCourse checks the schedule-defining fields of a new course.
func ValidateCourse(c model.Course) error {
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if c.CategoryID == 0 {
		return fmt.Errorf("%w: category_id is required", ErrValidation)
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrValidation)
	}
	if !c.Frequency.Valid() {
		return fmt.Errorf("%w: frequency must be one of settimanale, ogni_due_giorni, giornaliero", ErrValidation)
	}
	if c.SessionCount < 1 || c.SessionCount > MaxSessionCount {
		return fmt.Errorf("%w: session_count must be between 1 and %d", ErrValidation, MaxSessionCount)
	}
	if c.DurationHours < 1 || c.DurationHours > MaxDurationHours {
		return fmt.Errorf("%w: duration_hours must be between 1 and %d", ErrValidation, MaxDurationHours)
	}
	if c.MaxParticipants < 1 || c.MaxParticipants > MaxParticipants {
		return fmt.Errorf("%w: max_participants must be between 1 and %d", ErrValidation, MaxParticipants)
	}
	return nil
}

// CreateCourse validates the course, generates its timetable and
// persists both atomically. On success the course carries its stored
// defaults and the returned sessions are the freshly inserted timetable
// in sequence order.
func (s *SchedulerService) CreateCourse(ctx context.Context, c *model.Course) ([]model.Session, error) {
	if err := ValidateCourse(*c); err != nil {
		return nil, err
	}
	// Compare dates only: a course may still start today.
	today := s.now().UTC().Truncate(24 * time.Hour)
	if c.StartDate.Before(today) {
		return nil, fmt.Errorf("%w: start_date is in the past", ErrValidation)
	}
	ok, err := s.categories.Exists(ctx, c.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %d", ErrValidation, c.CategoryID)
	}
	if c.Status == "" {
		c.Status = model.CourseActive
	}

	tx, err := s.courses.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.courses.CreateTx(ctx, tx, c); err != nil {
		return nil, err
	}
	schedule := BuildSchedule(*c)
	if err := s.sessions.CreateBulkTx(ctx, tx, schedule); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.sessions.ListByCourse(ctx, c.ID)
}

// UpdateSession applies an edit to a single session after checking that
// the new date does not precede the owning course's start date. The
// sequence number never changes.
func (s *SchedulerService) UpdateSession(ctx context.Context, chefID uint64, id uint64, date time.Time, modality model.Modality, title, description string, durationMinutes int) (model.Session, error) {
	if !modality.Valid() {
		return model.Session{}, fmt.Errorf("%w: modality must be online or presenza", ErrValidation)
	}
	if durationMinutes <= 0 {
		return model.Session{}, fmt.Errorf("%w: duration_minutes must be positive", ErrValidation)
	}
	if title == "" {
		return model.Session{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	sess, err := s.sessions.GetByIDForChef(ctx, id, chefID)
	if err != nil {
		return model.Session{}, err
	}
	course, err := s.courses.GetByID(ctx, sess.CourseID)
	if err != nil {
		return model.Session{}, err
	}
	if date.Before(course.StartDate) {
		return model.Session{}, fmt.Errorf("%w: session date precedes course start", ErrValidation)
	}
	sess.Date = date
	sess.Modality = modality
	sess.Title = title
	sess.Description = description
	sess.DurationMinutes = durationMinutes
	if err := s.sessions.Update(ctx, &sess); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// LinkRecipe associates a recipe with a practical session at the given
// execution order. Online sessions return ErrNotPractical; the recipe
// must belong to the same chef as the session's course.
func (s *SchedulerService) LinkRecipe(ctx context.Context, chefID, sessionID, recipeID uint64, executionOrder int) error {
	if executionOrder < 1 {
		return fmt.Errorf("%w: execution_order must be at least 1", ErrValidation)
	}
	sess, err := s.sessions.GetByIDForChef(ctx, sessionID, chefID)
	if err != nil {
		return err
	}
	if sess.Modality != model.ModalityInPerson {
		return ErrNotPractical
	}
	if _, err := s.recipes.GetByIDForChef(ctx, recipeID, chefID); err != nil {
		return err
	}
	return s.sessions.AddRecipe(ctx, sessionID, recipeID, executionOrder)
}
