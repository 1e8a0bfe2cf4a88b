package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"petbook/config"
	"petbook/utils"

	"go.uber.org/zap"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

const slotsCacheTTL = 30 * time.Second

// BusinessHours describes the daily operating window of the slot grid.
type BusinessHours struct {
	OpeningHour int // inclusive, e.g. 9
	ClosingHour int // exclusive, e.g. 18
	IntervalMin int // slot width in minutes
}

// HoursFromConfig reads the operating window from the loaded configuration,
// falling back to 09:00-18:00 with 30-minute slots.
func HoursFromConfig() BusinessHours {
	h := BusinessHours{
		OpeningHour: config.AppConfig.OpeningHour,
		ClosingHour: config.AppConfig.ClosingHour,
		IntervalMin: config.AppConfig.SlotIntervalMin,
	}
	if h.IntervalMin <= 0 {
		h.IntervalMin = 30
	}
	if h.OpeningHour == 0 && h.ClosingHour == 0 {
		h.OpeningHour = 9
		h.ClosingHour = 18
	}
	return h
}

// validDate checks the strict YYYY-MM-DD pattern and that the value is a real
// calendar date.
func validDate(date string) bool {
	if !datePattern.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// grid returns the full fixed sequence of candidate slots for one day, in
// ascending order. The day is anchored at UTC; no timezone conversion applies.
func (h BusinessHours) grid(date string) []string {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}

	current := time.Date(day.Year(), day.Month(), day.Day(), h.OpeningHour, 0, 0, 0, time.UTC)
	closing := time.Date(day.Year(), day.Month(), day.Day(), h.ClosingHour, 0, 0, 0, time.UTC)

	var slots []string
	for current.Before(closing) {
		slots = append(slots, current.Format("15:04"))
		current = current.Add(time.Duration(h.IntervalMin) * time.Minute)
	}
	return slots
}

// AvailableSlots returns the bookable times for one date: the fixed grid minus
// every slot occupied by an existing appointment, whatever its status.
func (s *DefaultBookingService) AvailableSlots(date string) ([]string, error) {
	if date == "" {
		return nil, newValidationError("por favor, forneça uma data para verificar os horários")
	}
	if !validDate(date) {
		return nil, newValidationError("formato de data inválido, use YYYY-MM-DD")
	}

	if cached, ok := s.cachedSlots(date); ok {
		return cached, nil
	}

	appts, err := s.Repo.ListByDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for %s: %w", date, err)
	}
	taken := make(map[string]bool, len(appts))
	for _, a := range appts {
		taken[a.Time] = true
	}

	available := make([]string, 0)
	for _, slot := range s.Hours.grid(date) {
		if !taken[slot] {
			available = append(available, slot)
		}
	}

	s.cacheSlots(date, available)
	return available, nil
}

// cachedSlots reads the per-date availability from Redis. A nil client or any
// cache error counts as a miss.
func (s *DefaultBookingService) cachedSlots(date string) ([]string, bool) {
	if s.Cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := s.Cache.Get(ctx, utils.SlotsCachePrefix+date).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *DefaultBookingService) cacheSlots(date string, slots []string) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, utils.SlotsCachePrefix+date, raw, slotsCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("failed to cache availability", zap.String("date", date), zap.Error(err))
	}
}

// invalidateSlots drops the cached availability for a date after a booking.
func (s *DefaultBookingService) invalidateSlots(date string) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.Cache.Del(ctx, utils.SlotsCachePrefix+date).Err()
}
