package fiber

type ActivityPointResponse struct {
	Date         string  `json:"date" example:"2024-01-31"`
	Count        int     `json:"count"`
	TrailingMean float64 `json:"trailing_mean_30d"`
}

type ActivitySummaryResponse struct {
	Current float64  `json:"current"`
	Delta   *float64 `json:"delta"`
}

type ActiveUsersResponse struct {
	Revision string                  `json:"revision"`
	Metric   string                  `json:"metric" example:"mau"`
	Empty    bool                    `json:"empty"`
	Summary  ActivitySummaryResponse `json:"summary"`
	Points   []ActivityPointResponse `json:"points"`
}

type ChannelStatResponse struct {
	ChannelName     string  `json:"channel_name"`
	TotalCount      int     `json:"total_count"`
	TopAuthor       *string `json:"top_author_name"`
	TopAuthorAvatar *string `json:"top_author_avatar"`
}

type ChannelDayCountResponse struct {
	Date        string `json:"date" example:"2024-01-31"`
	ChannelName string `json:"channel_name"`
	Count       int    `json:"count"`
}

type ChannelActivityResponse struct {
	Revision string                    `json:"revision"`
	Days     *int                      `json:"days"`
	Empty    bool                      `json:"empty"`
	Channels []ChannelStatResponse     `json:"channels"`
	Timeline []ChannelDayCountResponse `json:"timeline"`
	Totals   []ActivityPointResponse   `json:"totals"`
}

type RetentionRecordResponse struct {
	AuthorName string `json:"author_name"`
	JoinedAt   string `json:"joined_at" example:"2024-01-01T10:00:00Z"`
	Retained   bool   `json:"retained"`
}

type RetentionSummaryResponse struct {
	Evaluated int      `json:"evaluated"`
	Retained  int      `json:"retained"`
	Rate      *float64 `json:"rate"`
}

type RetentionResponse struct {
	Revision      string                    `json:"revision"`
	RetentionDays int                       `json:"retention_days"`
	Cohort        string                    `json:"cohort"`
	Empty         bool                      `json:"empty"`
	Summary       RetentionSummaryResponse  `json:"summary"`
	Records       []RetentionRecordResponse `json:"records"`
}

type GrowthPointResponse struct {
	Timestamp  string `json:"timestamp" example:"2024-01-01T10:00:00Z"`
	AuthorName string `json:"author_name"`
	Total      int    `json:"total"`
}

type JoinerSplitResponse struct {
	NewAccounts      int `json:"new_accounts"`
	ExistingAccounts int `json:"existing_accounts"`
}

type UserGrowthResponse struct {
	Revision string                `json:"revision"`
	Empty    bool                  `json:"empty"`
	Joiners  JoinerSplitResponse   `json:"joiners"`
	Points   []GrowthPointResponse `json:"points"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"days must be a positive integer"`
}
