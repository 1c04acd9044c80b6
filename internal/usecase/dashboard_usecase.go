package usecase

import (
	"context"
	"sort"

	"shortlist-console/internal/repository"
)

const (
	dashboardRecentJobs     = 5
	dashboardRecentActivity = 10
)

type DashboardStats struct {
	TotalJobs       int
	OpenJobs        int
	TotalApplicants int
	Shortlisted     int
	RecentJobs      []JobSummary
	Activity        []repository.ConsoleEvent
}

type DashboardUsecase interface {
	Dashboard(ctx context.Context, companyID string) DashboardStats
}

type Dashboard struct {
	jobs     *Jobs
	activity *Activity
}

func NewDashboardUsecase(jobs *Jobs, activity *Activity) *Dashboard {
	return &Dashboard{jobs: jobs, activity: activity}
}

func (u *Dashboard) Dashboard(ctx context.Context, companyID string) DashboardStats {
	summaries := u.jobs.ListJobSummaries(ctx, companyID)

	stats := DashboardStats{TotalJobs: len(summaries)}
	for _, s := range summaries {
		if s.Job.IsOpen() {
			stats.OpenJobs++
		}
		stats.TotalApplicants += s.ApplicantCount
		stats.Shortlisted += s.ShortlistedCount
	}

	recent := make([]JobSummary, len(summaries))
	copy(recent, summaries)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Job.CreatedAt.After(recent[j].Job.CreatedAt)
	})
	if len(recent) > dashboardRecentJobs {
		recent = recent[:dashboardRecentJobs]
	}
	stats.RecentJobs = recent
	stats.Activity = u.activity.Recent(ctx, companyID, dashboardRecentActivity)
	return stats
}

var _ DashboardUsecase = (*Dashboard)(nil)
