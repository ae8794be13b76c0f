package domain

import "time"

// DailyCount is one point of a gap-free daily series. Date is midnight UTC.
type DailyCount struct {
	Date  time.Time
	Count int
}

// ActivityPoint is a DailyCount with its trailing mean attached.
type ActivityPoint struct {
	Date         time.Time
	Count        int
	TrailingMean float64
}

// ActivitySummary is the headline figure of a series. Delta is nil when
// there is not enough history to compare against.
type ActivitySummary struct {
	Current float64
	Delta   *float64
}

type ActiveUsersReport struct {
	Revision string
	Metric   string // "dau" / "mau"
	Points   []ActivityPoint
	Summary  ActivitySummary
	Empty    bool
}

// ChannelStat ranks one channel. TopAuthor and TopAuthorAvatar are "" when
// the channel was silent in the requested window.
type ChannelStat struct {
	ChannelName     string
	TotalCount      int
	TopAuthor       string
	TopAuthorAvatar string
}

// ChannelDayCount is the number of messages in a channel on a UTC date.
type ChannelDayCount struct {
	Date        time.Time
	ChannelName string
	Count       int
}

type ChannelActivityReport struct {
	Revision string
	Days     *int // nil = all time
	Channels []ChannelStat
	Timeline []ChannelDayCount
	Totals   []ActivityPoint
	Empty    bool
}

type RetentionRecord struct {
	AuthorName string
	JoinedAt   time.Time
	Retained   bool
}

// RetentionSummary aggregates records. Rate is nil when nobody was evaluated.
type RetentionSummary struct {
	Evaluated int
	Retained  int
	Rate      *float64
}

type RetentionReport struct {
	Revision      string
	RetentionDays int
	Cohort        string
	Records       []RetentionRecord
	Summary       RetentionSummary
	Empty         bool
}

// GrowthPoint marks the moment the community reached Total distinct authors.
type GrowthPoint struct {
	Timestamp  time.Time
	AuthorName string
	Total      int
}

// JoinerSplit counts authors by whether their account was created for the
// community (new) or already existed.
type JoinerSplit struct {
	NewAccounts      int
	ExistingAccounts int
}

type UserGrowthReport struct {
	Revision string
	Points   []GrowthPoint
	Joiners  JoinerSplit
	Empty    bool
}
