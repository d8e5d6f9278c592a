package leave

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateDays(t *testing.T) {
	start := time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 4, 14, 0, 0, 0, 0, time.UTC)

	days, err := CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 days, got %d", days)
	}
}

func TestCalculateDaysSameDay(t *testing.T) {
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	days, err := CalculateDays(day, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %d", days)
	}
}

func TestCalculateDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC)
	end := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	days, err := CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %d", days)
	}
}

func TestCalculateDaysInvalid(t *testing.T) {
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC)

	_, err := CalculateDays(start, end)
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestOnLeave(t *testing.T) {
	req := Request{
		StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
	}
	if !req.OnLeave(time.Date(2024, 7, 5, 23, 0, 0, 0, time.UTC)) {
		t.Fatal("expected last day to be on leave")
	}
	if req.OnLeave(time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected day after range to be off leave")
	}
}
