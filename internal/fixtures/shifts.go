// Package fixtures holds the default data seeded on first boot.
package fixtures

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"gopkg.in/yaml.v3"
)

//go:embed shifts.yaml
var shiftsYAML []byte

type shiftFixture struct {
	Name                string  `yaml:"name"`
	StartTime           string  `yaml:"start_time"`
	EndTime             string  `yaml:"end_time"`
	WorkHours           float64 `yaml:"work_hours"`
	GracePeriodMinutes  int     `yaml:"grace_period_mins"`
	MinHoursBeforeLunch float64 `yaml:"min_hours_before_lunch"`
	Default             bool    `yaml:"default"`
}

// DefaultShifts returns the embedded default shifts as create requests.
func DefaultShifts() ([]shift.CreateShiftRequest, error) {
	return parseShifts(shiftsYAML)
}

func parseShifts(data []byte) ([]shift.CreateShiftRequest, error) {
	var doc struct {
		Shifts []shiftFixture `yaml:"shifts"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse shift fixtures: %w", err)
	}

	reqs := make([]shift.CreateShiftRequest, 0, len(doc.Shifts))
	for _, f := range doc.Shifts {
		req := shift.CreateShiftRequest{
			Name:                f.Name,
			StartTime:           f.StartTime,
			EndTime:             f.EndTime,
			WorkHours:           f.WorkHours,
			GracePeriodMinutes:  &f.GracePeriodMinutes,
			MinHoursBeforeLunch: &f.MinHoursBeforeLunch,
			IsDefault:           f.Default,
		}
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("shift fixture %q: %w", f.Name, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// SeedShifts creates the default shifts when no shift exists yet, active or
// not. It returns how many shifts were created.
func SeedShifts(ctx context.Context, svc shift.ShiftService) (int, error) {
	existing, err := svc.List(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("list shifts: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	reqs, err := DefaultShifts()
	if err != nil {
		return 0, err
	}
	for i, req := range reqs {
		if _, err := svc.Create(ctx, req); err != nil {
			return i, fmt.Errorf("seed shift %q: %w", req.Name, err)
		}
	}

	slog.Info("default shifts seeded", "count", len(reqs))
	return len(reqs), nil
}
