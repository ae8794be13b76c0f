package fiber

import (
	"time"

	"community-metrics-service/internal/analytics/core/domain"
)

const dateLayout = "2006-01-02"

func toActivityPoints(points []domain.ActivityPoint) []ActivityPointResponse {
	out := make([]ActivityPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, ActivityPointResponse{
			Date:         p.Date.Format(dateLayout),
			Count:        p.Count,
			TrailingMean: p.TrailingMean,
		})
	}
	return out
}

func toActiveUsersResponse(res *domain.ActiveUsersReport) ActiveUsersResponse {
	return ActiveUsersResponse{
		Revision: res.Revision,
		Metric:   res.Metric,
		Empty:    res.Empty,
		Summary: ActivitySummaryResponse{
			Current: res.Summary.Current,
			Delta:   res.Summary.Delta,
		},
		Points: toActivityPoints(res.Points),
	}
}

func toChannelActivityResponse(res *domain.ChannelActivityReport) ChannelActivityResponse {
	resp := ChannelActivityResponse{
		Revision: res.Revision,
		Days:     res.Days,
		Empty:    res.Empty,
		Channels: make([]ChannelStatResponse, 0, len(res.Channels)),
		Timeline: make([]ChannelDayCountResponse, 0, len(res.Timeline)),
		Totals:   toActivityPoints(res.Totals),
	}

	for _, ch := range res.Channels {
		resp.Channels = append(resp.Channels, ChannelStatResponse{
			ChannelName:     ch.ChannelName,
			TotalCount:      ch.TotalCount,
			TopAuthor:       nullable(ch.TopAuthor),
			TopAuthorAvatar: nullable(ch.TopAuthorAvatar),
		})
	}

	for _, d := range res.Timeline {
		resp.Timeline = append(resp.Timeline, ChannelDayCountResponse{
			Date:        d.Date.Format(dateLayout),
			ChannelName: d.ChannelName,
			Count:       d.Count,
		})
	}

	return resp
}

func toRetentionResponse(res *domain.RetentionReport) RetentionResponse {
	resp := RetentionResponse{
		Revision:      res.Revision,
		RetentionDays: res.RetentionDays,
		Cohort:        res.Cohort,
		Empty:         res.Empty,
		Summary: RetentionSummaryResponse{
			Evaluated: res.Summary.Evaluated,
			Retained:  res.Summary.Retained,
			Rate:      res.Summary.Rate,
		},
		Records: make([]RetentionRecordResponse, 0, len(res.Records)),
	}

	for _, r := range res.Records {
		resp.Records = append(resp.Records, RetentionRecordResponse{
			AuthorName: r.AuthorName,
			JoinedAt:   r.JoinedAt.UTC().Format(time.RFC3339Nano),
			Retained:   r.Retained,
		})
	}

	return resp
}

func toUserGrowthResponse(res *domain.UserGrowthReport) UserGrowthResponse {
	resp := UserGrowthResponse{
		Revision: res.Revision,
		Empty:    res.Empty,
		Joiners: JoinerSplitResponse{
			NewAccounts:      res.Joiners.NewAccounts,
			ExistingAccounts: res.Joiners.ExistingAccounts,
		},
		Points: make([]GrowthPointResponse, 0, len(res.Points)),
	}

	for _, p := range res.Points {
		resp.Points = append(resp.Points, GrowthPointResponse{
			Timestamp:  p.Timestamp.UTC().Format(time.RFC3339Nano),
			AuthorName: p.AuthorName,
			Total:      p.Total,
		})
	}

	return resp
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
