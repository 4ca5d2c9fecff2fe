package coingecko

// CoinInfo represents a coin detail response from the CoinGecko API
type CoinInfo struct {
	ID                      string        `json:"id"`
	Symbol                  string        `json:"symbol"`
	Name                    string        `json:"name"`
	PublicNotice            string        `json:"public_notice"`
	Links                   Links         `json:"links"`
	CommunityData           CommunityData `json:"community_data"`
	WatchlistPortfolioUsers int           `json:"watchlist_portfolio_users"`
}

// Links holds the project links CoinGecko tracks for a coin
type Links struct {
	Homepage                  []string `json:"homepage"`
	TwitterScreenName         string   `json:"twitter_screen_name"`
	TelegramChannelIdentifier string   `json:"telegram_channel_identifier"`
	SubredditURL              string   `json:"subreddit_url"`
}

// CommunityData holds community size metrics
type CommunityData struct {
	TwitterFollowers         int `json:"twitter_followers"`
	TelegramChannelUserCount int `json:"telegram_channel_user_count"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error string `json:"error"`
}
