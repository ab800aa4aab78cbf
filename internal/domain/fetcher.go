package domain

import "context"

// ReportFetcher retrieves the latest raw METAR text for a station.
type ReportFetcher interface {
	FetchMETAR(ctx context.Context, station string) (string, error)
}
