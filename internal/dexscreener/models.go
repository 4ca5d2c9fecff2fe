package dexscreener

// SearchResponse wraps the pair search API response
type SearchResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	Pairs         []Pair `json:"pairs"`
}

// Pair represents one trading pair from the DexScreener API
type Pair struct {
	ChainID       string             `json:"chainId"`
	DexID         string             `json:"dexId"`
	URL           string             `json:"url"`
	PairAddress   string             `json:"pairAddress"`
	BaseToken     TokenInfo          `json:"baseToken"`
	QuoteToken    TokenInfo          `json:"quoteToken"`
	PriceUSD      string             `json:"priceUsd"` // Decimal string
	Txns          map[string]Txns    `json:"txns"`     // Keyed by window: m5, h1, h6, h24
	Volume        map[string]float64 `json:"volume"`
	PriceChange   map[string]float64 `json:"priceChange"` // Percent
	Liquidity     *Liquidity         `json:"liquidity"`
	FDV           float64            `json:"fdv"`
	MarketCap     float64            `json:"marketCap"`
	PairCreatedAt int64              `json:"pairCreatedAt"` // Unix timestamp in milliseconds
	Info          *PairInfo          `json:"info"`
}

// TokenInfo identifies one side of a pair
type TokenInfo struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Txns counts buys and sells within one window
type Txns struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// Liquidity holds the pooled amounts for a pair
type Liquidity struct {
	USD   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// PairInfo carries the optional project links DexScreener attaches to a pair
type PairInfo struct {
	Websites []Website `json:"websites"`
	Socials  []Social  `json:"socials"`
}

// Website is a project website link
type Website struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Social is a project social media link
type Social struct {
	Type string `json:"type"` // twitter, telegram, discord
	URL  string `json:"url"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
