package coingecko

import (
	"strings"

	"github.com/wKayaa/gemfounder/internal/token"
)

// Enrich folds the CoinGecko listing into a scanned record. A listing is
// itself a legitimacy signal: CoinGecko reviews contracts before indexing
// them, so a listed token counts as verified.
func (ci *CoinInfo) Enrich(rec *token.Record) {
	rec.Verified = true

	if !rec.HasWebsite {
		for _, site := range ci.Links.Homepage {
			if strings.TrimSpace(site) != "" {
				rec.HasWebsite = true
				break
			}
		}
	}
	if !rec.HasSocials {
		rec.HasSocials = ci.Links.TwitterScreenName != "" ||
			ci.Links.TelegramChannelIdentifier != "" ||
			ci.Links.SubredditURL != ""
	}

	// Watchers plus social followings stand in for a holder count, which
	// neither upstream API exposes directly.
	community := ci.WatchlistPortfolioUsers
	if ci.CommunityData.TelegramChannelUserCount > community {
		community = ci.CommunityData.TelegramChannelUserCount
	}
	if community > rec.HolderCount {
		rec.HolderCount = community
	}
}
