package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/pkg/model"
)

// Sentinel errors handlers map to HTTP statuses
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// StateStore is the persistence collaborator. Load returns nil with no
// error when nothing has been persisted yet; Save writes the whole state
// atomically.
type StateStore interface {
	Load(ctx context.Context) (*model.AppState, error)
	Save(ctx context.Context, state *model.AppState) error
}

// TrackerService owns the in-memory record store and is the only writer
// to it. Every compound mutation (store update, gamification recompute,
// persist) runs under one mutex so point, level and achievement updates
// stay atomic relative to concurrent reads. Queries recompute from the
// full record set on every call.
type TrackerService struct {
	mu     sync.Mutex
	state  model.AppState
	store  StateStore
	logger *zap.Logger
	now    func() time.Time
}

// NewTrackerService loads persisted state through the store, applies
// per-field defaults and seeds starter data where collections are empty
func NewTrackerService(ctx context.Context, store StateStore, logger *zap.Logger) (*TrackerService, error) {
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	var state model.AppState
	if loaded == nil {
		state = model.DefaultAppState()
		logger.Info("no persisted state found, starting fresh")
	} else {
		state = *loaded
		state.Normalize()
	}

	logger.Info("tracker state loaded",
		zap.Int("records", len(state.Records)),
		zap.Int("reminders", len(state.Reminders)),
		zap.Int("level", state.Gamification.Level),
	)

	return &TrackerService{
		state:  state,
		store:  store,
		logger: logger,
		now:    time.Now,
	}, nil
}

// persist saves the whole state through the store. Must be called with
// the mutex held.
func (s *TrackerService) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, &s.state); err != nil {
		s.logger.Error("failed to persist state", zap.Error(err))
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// AddRecordInput carries the caller-supplied fields of a new record
type AddRecordInput struct {
	Amount             int
	Note               *string
	IsReminderResponse bool
	DrinkType          model.DrinkType
	ContainerID        *string
}

// AddRecord logs a drink, awards gamification points, re-evaluates
// achievements and persists
func (s *TrackerService) AddRecord(ctx context.Context, in AddRecordInput) (model.IntakeRecord, error) {
	if in.Amount <= 0 {
		return model.IntakeRecord{}, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if in.DrinkType == "" {
		in.DrinkType = model.DrinkTypeWater
	}
	if !in.DrinkType.Valid() {
		return model.IntakeRecord{}, fmt.Errorf("%w: unknown drink type %q", ErrInvalidInput, in.DrinkType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.addRecordLocked(in)
	if err := s.persist(ctx); err != nil {
		return model.IntakeRecord{}, err
	}

	s.logger.Info("record added",
		zap.String("record_id", rec.ID),
		zap.Int("amount", rec.Amount),
		zap.String("drink_type", string(rec.DrinkType)),
		zap.Int("effective", rec.EffectiveAmount()),
		zap.Int("points", s.state.Gamification.Points),
		zap.Int("level", s.state.Gamification.Level),
	)
	return rec, nil
}

// addRecordLocked inserts the record newest-first and runs the
// gamification recompute. Caller holds the mutex and persists.
func (s *TrackerService) addRecordLocked(in AddRecordInput) model.IntakeRecord {
	rec := model.IntakeRecord{
		ID:                 uuid.New().String(),
		Amount:             in.Amount,
		Timestamp:          s.now(),
		Note:               in.Note,
		IsReminderResponse: in.IsReminderResponse,
		DrinkType:          in.DrinkType,
		ContainerID:        in.ContainerID,
	}
	s.state.Records = append([]model.IntakeRecord{rec}, s.state.Records...)

	s.state.Gamification.Points += PointsForRecord(rec)
	ApplyLevelUps(&s.state.Gamification)
	s.state.UnlockedAchievements = EvaluateAchievements(
		s.state.Records, s.state.Profile.DailyGoalMl, s.now(), s.state.UnlockedAchievements)
	return rec
}

// LogTemplate logs one record per template item as a single mutation
func (s *TrackerService) LogTemplate(ctx context.Context, templateID string, note *string) ([]model.IntakeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tpl *model.Template
	for i := range s.state.Templates {
		if s.state.Templates[i].ID == templateID {
			tpl = &s.state.Templates[i]
			break
		}
	}
	if tpl == nil {
		return nil, fmt.Errorf("%w: template %s", ErrNotFound, templateID)
	}

	records := make([]model.IntakeRecord, 0, len(tpl.Items))
	for _, item := range tpl.Items {
		records = append(records, s.addRecordLocked(AddRecordInput{
			Amount:    item.Amount,
			Note:      note,
			DrinkType: item.DrinkType,
		}))
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("template logged",
		zap.String("template_id", templateID),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// DeleteRecord removes a record by id and persists
func (s *TrackerService) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.state.Records {
		if r.ID == id {
			s.state.Records = append(s.state.Records[:i], s.state.Records[i+1:]...)
			if err := s.persist(ctx); err != nil {
				return err
			}
			s.logger.Info("record deleted", zap.String("record_id", id))
			return nil
		}
	}
	return fmt.Errorf("%w: record %s", ErrNotFound, id)
}

// Records returns a copy of the record list, optionally filtered to one
// calendar day
func (s *TrackerService) Records(day *time.Time) []model.IntakeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if day != nil {
		recs := RecordsForDay(s.state.Records, *day)
		if recs == nil {
			recs = []model.IntakeRecord{}
		}
		return recs
	}
	out := make([]model.IntakeRecord, len(s.state.Records))
	copy(out, s.state.Records)
	return out
}

// AddReminder stores a new reminder and persists
func (s *TrackerService) AddReminder(ctx context.Context, at time.Time, days []int, note *string) (model.Reminder, error) {
	for _, d := range days {
		if d < 1 || d > 7 {
			return model.Reminder{}, fmt.Errorf("%w: reminder day %d out of range 1-7", ErrInvalidInput, d)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rem := model.Reminder{
		ID:       uuid.New().String(),
		Time:     at,
		IsActive: true,
		Days:     days,
		Note:     note,
	}
	s.state.Reminders = append(s.state.Reminders, rem)
	if err := s.persist(ctx); err != nil {
		return model.Reminder{}, err
	}
	s.logger.Info("reminder added", zap.String("reminder_id", rem.ID))
	return rem, nil
}

// UpdateReminder replaces a stored reminder by id and persists
func (s *TrackerService) UpdateReminder(ctx context.Context, rem model.Reminder) error {
	for _, d := range rem.Days {
		if d < 1 || d > 7 {
			return fmt.Errorf("%w: reminder day %d out of range 1-7", ErrInvalidInput, d)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Reminders {
		if s.state.Reminders[i].ID == rem.ID {
			s.state.Reminders[i] = rem
			return s.persist(ctx)
		}
	}
	return fmt.Errorf("%w: reminder %s", ErrNotFound, rem.ID)
}

// DeleteReminder removes a reminder by id and persists
func (s *TrackerService) DeleteReminder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Reminders {
		if s.state.Reminders[i].ID == id {
			s.state.Reminders = append(s.state.Reminders[:i], s.state.Reminders[i+1:]...)
			return s.persist(ctx)
		}
	}
	return fmt.Errorf("%w: reminder %s", ErrNotFound, id)
}

// ToggleReminder flips a reminder's active flag and persists
func (s *TrackerService) ToggleReminder(ctx context.Context, id string) (model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Reminders {
		if s.state.Reminders[i].ID == id {
			s.state.Reminders[i].IsActive = !s.state.Reminders[i].IsActive
			if err := s.persist(ctx); err != nil {
				return model.Reminder{}, err
			}
			return s.state.Reminders[i], nil
		}
	}
	return model.Reminder{}, fmt.Errorf("%w: reminder %s", ErrNotFound, id)
}

// Reminders returns a copy of the reminder list
func (s *TrackerService) Reminders() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reminder, len(s.state.Reminders))
	copy(out, s.state.Reminders)
	return out
}

// AddContainer stores a new container and persists
func (s *TrackerService) AddContainer(ctx context.Context, name string, volumeMl int) (model.Container, error) {
	if name == "" {
		return model.Container{}, fmt.Errorf("%w: container name is required", ErrInvalidInput)
	}
	if volumeMl <= 0 {
		return model.Container{}, fmt.Errorf("%w: container volume must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.Container{ID: uuid.New().String(), Name: name, VolumeMl: volumeMl}
	s.state.Containers = append(s.state.Containers, c)
	if err := s.persist(ctx); err != nil {
		return model.Container{}, err
	}
	return c, nil
}

// UpdateContainer replaces a stored container by id and persists
func (s *TrackerService) UpdateContainer(ctx context.Context, c model.Container) error {
	if c.Name == "" {
		return fmt.Errorf("%w: container name is required", ErrInvalidInput)
	}
	if c.VolumeMl <= 0 {
		return fmt.Errorf("%w: container volume must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Containers {
		if s.state.Containers[i].ID == c.ID {
			s.state.Containers[i] = c
			return s.persist(ctx)
		}
	}
	return fmt.Errorf("%w: container %s", ErrNotFound, c.ID)
}

// DeleteContainer removes a container by id and persists
func (s *TrackerService) DeleteContainer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Containers {
		if s.state.Containers[i].ID == id {
			s.state.Containers = append(s.state.Containers[:i], s.state.Containers[i+1:]...)
			return s.persist(ctx)
		}
	}
	return fmt.Errorf("%w: container %s", ErrNotFound, id)
}

// Containers returns a copy of the container list
func (s *TrackerService) Containers() []model.Container {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Container, len(s.state.Containers))
	copy(out, s.state.Containers)
	return out
}

// AddTemplate stores a new template and persists
func (s *TrackerService) AddTemplate(ctx context.Context, name string, items []model.TemplateItem) (model.Template, error) {
	if name == "" {
		return model.Template{}, fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}
	if len(items) == 0 {
		return model.Template{}, fmt.Errorf("%w: template needs at least one item", ErrInvalidInput)
	}
	for i := range items {
		if items[i].Amount <= 0 {
			return model.Template{}, fmt.Errorf("%w: template item amount must be positive", ErrInvalidInput)
		}
		if items[i].DrinkType == "" {
			items[i].DrinkType = model.DrinkTypeWater
		}
		if !items[i].DrinkType.Valid() {
			return model.Template{}, fmt.Errorf("%w: unknown drink type %q", ErrInvalidInput, items[i].DrinkType)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tpl := model.Template{ID: uuid.New().String(), Name: name, Items: items}
	s.state.Templates = append(s.state.Templates, tpl)
	if err := s.persist(ctx); err != nil {
		return model.Template{}, err
	}
	return tpl, nil
}

// DeleteTemplate removes a template by id and persists
func (s *TrackerService) DeleteTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Templates {
		if s.state.Templates[i].ID == id {
			s.state.Templates = append(s.state.Templates[:i], s.state.Templates[i+1:]...)
			return s.persist(ctx)
		}
	}
	return fmt.Errorf("%w: template %s", ErrNotFound, id)
}

// Templates returns a copy of the template list
func (s *TrackerService) Templates() []model.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Template, len(s.state.Templates))
	copy(out, s.state.Templates)
	return out
}

// Profile returns the current profile
func (s *TrackerService) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Profile
}

// UpdateProfile replaces the profile and persists. Empty enum fields
// keep their previous values; unknown values are rejected.
func (s *TrackerService) UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	if p.WeightKg <= 0 {
		return model.Profile{}, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ActivityLevel == "" {
		p.ActivityLevel = s.state.Profile.ActivityLevel
	}
	if p.Gender == "" {
		p.Gender = s.state.Profile.Gender
	}
	if p.Theme == "" {
		p.Theme = s.state.Profile.Theme
	}
	if !p.ActivityLevel.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown activity level %q", ErrInvalidInput, p.ActivityLevel)
	}
	if !p.Gender.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, p.Gender)
	}
	if !p.Theme.Valid() {
		return model.Profile{}, fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, p.Theme)
	}

	s.state.Profile = p
	if err := s.persist(ctx); err != nil {
		return model.Profile{}, err
	}
	s.logger.Info("profile updated", zap.Int("daily_goal", p.DailyGoalMl))
	return p, nil
}

// RecommendedGoal derives a daily goal from the current profile without
// changing it
func (s *TrackerService) RecommendedGoal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CalculateDailyGoal(s.state.Profile)
}

// TodaySummary is the home screen payload
type TodaySummary struct {
	Date       time.Time            `json:"date"`
	TotalMl    int                  `json:"total"`
	GoalMl     int                  `json:"goal"`
	Percentage float64              `json:"percentage"` // capped at 150
	Level      model.HydrationLevel `json:"level"`
	Forecast   int                  `json:"forecast"`
	Streak     int                  `json:"streak"`
	Tip        string               `json:"tip"`
}

// Today computes the current day's summary
func (s *TrackerService) Today() TodaySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	goal := s.state.Profile.DailyGoalMl
	pct := CappedPercentageForDay(s.state.Records, now, goal)
	return TodaySummary{
		Date:       now,
		TotalMl:    TotalForDay(s.state.Records, now),
		GoalMl:     goal,
		Percentage: pct,
		Level:      model.HydrationLevelFrom(pct),
		Forecast:   Forecast(s.state.Records, now),
		Streak:     StreakDays(s.state.Records, goal, now),
		Tip:        DailyTip(pct),
	}
}

// DaySummary is the drill-down payload for a single calendar day
type DaySummary struct {
	Date       time.Time            `json:"date"`
	TotalMl    int                  `json:"total"`
	GoalMl     int                  `json:"goal"`
	Percentage float64              `json:"percentage"` // uncapped
	Level      model.HydrationLevel `json:"level"`
	Rating     model.DayRating      `json:"rating"`
	Records    []model.IntakeRecord `json:"records"`
}

// Day computes the summary for an arbitrary calendar day
func (s *TrackerService) Day(day time.Time) DaySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := s.state.Profile.DailyGoalMl
	pct := PercentageForDay(s.state.Records, day, goal)
	records := RecordsForDay(s.state.Records, day)
	if records == nil {
		records = []model.IntakeRecord{}
	}
	return DaySummary{
		Date:       day,
		TotalMl:    TotalForDay(s.state.Records, day),
		GoalMl:     goal,
		Percentage: pct,
		Level:      model.HydrationLevelFrom(pct),
		Rating:     model.DayRatingFrom(pct),
		Records:    records,
	}
}

// WeeklyStats aggregates the 7 calendar days ending today
type WeeklyStats struct {
	Totals       []int `json:"totals"` // oldest first, always 7
	Averages     []int `json:"averages"`
	DailyAverage int   `json:"daily_average"`
}

// Weekly computes the weekly statistics
func (s *TrackerService) Weekly() WeeklyStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	return WeeklyStats{
		Totals:       WeeklyTotals(s.state.Records, now),
		Averages:     WeeklyAverages(s.state.Records, now),
		DailyAverage: AverageDailyVolume(s.state.Records, now),
	}
}

// MonthlyStats aggregates the current calendar month
type MonthlyStats struct {
	TotalMl        int `json:"total"`
	AllTimeTotalMl int `json:"all_time_total"`
}

// Monthly computes the monthly statistics
func (s *TrackerService) Monthly() MonthlyStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return MonthlyStats{
		TotalMl:        MonthlyTotal(s.state.Records, s.now()),
		AllTimeTotalMl: AllTimeEffectiveTotal(s.state.Records),
	}
}

// Trends returns daily totals for the n days ending today, oldest
// first; n defaults to DefaultTrendDays and is capped at MaxTrendDays
func (s *TrackerService) Trends(n int) []DailyTotal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		n = DefaultTrendDays
	}
	if n > MaxTrendDays {
		n = MaxTrendDays
	}
	return TrendTotals(s.state.Records, s.now(), n)
}

// TodayForecast projects today's end-of-day total from the pace so far
func (s *TrackerService) TodayForecast() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Forecast(s.state.Records, s.now())
}

// BestHour returns the strongest hour of day over the last 30 days
func (s *TrackerService) BestHour() *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BestHourOfDay(s.state.Records, s.now())
}

// Streak returns today's goal streak in days
func (s *TrackerService) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StreakDays(s.state.Records, s.state.Profile.DailyGoalMl, s.now())
}

// CalendarDay is one cell of the statistics calendar
type CalendarDay struct {
	Date       time.Time       `json:"date"`
	TotalMl    int             `json:"total"`
	Percentage float64         `json:"percentage"`
	Rating     model.DayRating `json:"rating"`
}

// Calendar rates every day of the given month
func (s *TrackerService) Calendar(year int, month time.Month) []CalendarDay {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := s.state.Profile.DailyGoalMl
	first := time.Date(year, month, 1, 0, 0, 0, 0, s.now().Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]CalendarDay, 0, daysInMonth)
	for d := 0; d < daysInMonth; d++ {
		day := first.AddDate(0, 0, d)
		pct := PercentageForDay(s.state.Records, day, goal)
		days = append(days, CalendarDay{
			Date:       day,
			TotalMl:    TotalForDay(s.state.Records, day),
			Percentage: pct,
			Rating:     model.DayRatingFrom(pct),
		})
	}
	return days
}

// GamificationStatus is the gamification screen payload
type GamificationStatus struct {
	Points                  int                  `json:"points"`
	Level                   int                  `json:"level"`
	PointsToNextLevel       int                  `json:"points_to_next_level"`
	CompletedChallengeCount int                  `json:"completed_challenge_count"`
	Challenge               model.DailyChallenge `json:"challenge"`
	ChallengeCompletedToday bool                 `json:"challenge_completed_today"`
}

// Gamification returns points, level and today's challenge state
func (s *TrackerService) Gamification() GamificationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	return GamificationStatus{
		Points:                  s.state.Gamification.Points,
		Level:                   s.state.Gamification.Level,
		PointsToNextLevel:       PointsToNextLevel(s.state.Gamification),
		CompletedChallengeCount: s.state.Gamification.CompletedChallengeCount,
		Challenge:               model.ChallengeForDay(now),
		ChallengeCompletedToday: ChallengeCompletedOn(s.state.Gamification, now),
	}
}

// CompleteDailyChallenge evaluates today's challenge. It returns false
// without mutating anything when the challenge was already completed
// today or its predicate does not hold; on success it awards the reward,
// re-runs level promotion and persists.
func (s *TrackerService) CompleteDailyChallenge(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if ChallengeCompletedOn(s.state.Gamification, now) {
		return false, nil
	}

	challenge := model.ChallengeForDay(now)
	dayRecords := RecordsForDay(s.state.Records, now)
	pct := PercentageForDay(s.state.Records, now, s.state.Profile.DailyGoalMl)
	if !EvaluateChallenge(challenge, now, dayRecords, pct) {
		return false, nil
	}

	completedAt := now
	s.state.Gamification.LastChallengeCompletedAt = &completedAt
	s.state.Gamification.CompletedChallengeCount++
	s.state.Gamification.Points += challenge.PointsReward
	ApplyLevelUps(&s.state.Gamification)

	if err := s.persist(ctx); err != nil {
		return false, err
	}

	s.logger.Info("daily challenge completed",
		zap.String("challenge_id", challenge.ID),
		zap.Int("reward", challenge.PointsReward),
		zap.Int("points", s.state.Gamification.Points),
		zap.Int("level", s.state.Gamification.Level),
	)
	return true, nil
}

// AchievementStatus pairs a catalog entry with its unlock state
type AchievementStatus struct {
	model.Achievement
	Unlocked bool `json:"unlocked"`
}

// Achievements returns the full catalog with unlock flags
func (s *TrackerService) Achievements() []AchievementStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AchievementStatus, 0, len(model.AchievementCatalog))
	for _, a := range model.AchievementCatalog {
		out = append(out, AchievementStatus{
			Achievement: a,
			Unlocked:    s.state.IsAchievementUnlocked(a.ID),
		})
	}
	return out
}

// ExportCSV renders every record in the fixed CSV format
func (s *TrackerService) ExportCSV() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExportCSV(s.state.Records)
}

// Reset discards all data, restores defaults with seeded starters and
// persists
func (s *TrackerService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = model.DefaultAppState()
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.logger.Info("all data reset")
	return nil
}
