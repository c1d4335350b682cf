package services

import (
	"context"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/repository"
	"golang.org/x/sync/errgroup"
)

// underUtilizedRatio marks engineers using less than half their ceiling.
const underUtilizedRatio = 0.5

// EngineerUtilization is one row of the team utilization report.
type EngineerUtilization struct {
	Engineer          models.User
	ActiveAssignments int
	Utilization       float64
}

// UtilizationReport summarizes allocation across the engineering team.
type UtilizationReport struct {
	Engineers          []EngineerUtilization
	TotalMaxCapacity   int
	TotalCurrent       int
	TeamUtilization    float64
	OverAllocated      []models.User
	UnderUtilized      []models.User
	ActiveAssignments  int
	ActiveProjectCount int
}

// AnalyticsService builds manager-facing capacity reports
type AnalyticsService struct {
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(userRepo repository.UserRepository, assignmentRepo repository.AssignmentRepository) *AnalyticsService {
	return &AnalyticsService{
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Utilization reports current against maximum capacity per engineer and for the team.
func (s *AnalyticsService) Utilization(ctx context.Context, actor auth.Identity) (*UtilizationReport, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	var (
		engineers   []models.User
		assignments []models.Assignment
		eg          errgroup.Group
	)
	eg.Go(func() error {
		var err error
		engineers, err = s.userRepo.ListEngineers(ctx, repository.EngineerFilter{})
		return err
	})
	eg.Go(func() error {
		var err error
		assignments, err = s.assignmentRepo.List(ctx, repository.AssignmentFilter{Statuses: activeStatuses})
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load utilization data: %w", err)
	}

	perEngineer := make(map[uint64]int, len(engineers))
	projects := make(map[uint64]struct{})
	for _, a := range assignments {
		perEngineer[a.EngineerID]++
		projects[a.ProjectID] = struct{}{}
	}

	report := &UtilizationReport{
		ActiveAssignments:  len(assignments),
		ActiveProjectCount: len(projects),
	}
	report.Engineers = slice.Map(engineers, func(idx int, u models.User) EngineerUtilization {
		return EngineerUtilization{
			Engineer:          u,
			ActiveAssignments: perEngineer[u.ID],
			Utilization:       ratio(u.CurrentCapacity, u.MaxCapacity),
		}
	})

	for _, u := range engineers {
		report.TotalMaxCapacity += u.MaxCapacity
		report.TotalCurrent += u.CurrentCapacity
	}
	report.TeamUtilization = ratio(report.TotalCurrent, report.TotalMaxCapacity)

	report.OverAllocated = slice.FindAll(engineers, func(u models.User) bool {
		return u.CurrentCapacity > u.MaxCapacity
	})
	report.UnderUtilized = slice.FindAll(engineers, func(u models.User) bool {
		return u.MaxCapacity > 0 && ratio(u.CurrentCapacity, u.MaxCapacity) < underUtilizedRatio
	})

	return report, nil
}

func ratio(current, ceiling int) float64 {
	if ceiling <= 0 {
		return 0
	}
	return float64(current) / float64(ceiling)
}
