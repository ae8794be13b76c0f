package domain

import "errors"

var (
	ErrInvalidRetentionDays = errors.New("retention_days must be a positive integer")
	ErrInvalidDays          = errors.New("days must be a positive integer")
	ErrInvalidMetric        = errors.New("metric must be one of: dau, mau")
	ErrInvalidCohort        = errors.New("cohort must be one of: all, new, existing")
)

const (
	MetricDAU = "dau"
	MetricMAU = "mau"

	CohortAll      = "all"
	CohortNew      = "new"
	CohortExisting = "existing"
)
