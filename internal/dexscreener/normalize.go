package dexscreener

import (
	"strconv"
	"time"

	"github.com/wKayaa/gemfounder/internal/token"
)

// whaleTradeLiquidityShare is the fraction of pool liquidity at which the
// average trade size reads as fully whale-dominated.
const whaleTradeLiquidityShare = 0.05

// Record converts one pair into the normalized token record the pipeline
// consumes. scannedAt stamps the record with the scan cycle time.
func (p *Pair) Record(scannedAt time.Time) *token.Record {
	rec := &token.Record{
		Chain:           p.ChainID,
		ContractAddress: p.BaseToken.Address,
		Symbol:          p.BaseToken.Symbol,
		Name:            p.BaseToken.Name,
		MarketCap:       p.MarketCap,
		DEX:             p.DexID,
		PairAddress:     p.PairAddress,
		URL:             p.URL,
		Lock:            token.LockUnknown,
		Source:          "dexscreener",
		ScannedAt:       scannedAt,
	}

	if price, err := strconv.ParseFloat(p.PriceUSD, 64); err == nil {
		rec.PriceUSD = price
	}
	if rec.MarketCap == 0 {
		rec.MarketCap = p.FDV
	}
	if p.Liquidity != nil {
		rec.LiquidityUSD = p.Liquidity.USD
	}
	rec.Volume1H = p.Volume["h1"]
	rec.Volume24H = p.Volume["h24"]
	rec.PriceChange1H = p.PriceChange["h1"]
	rec.PriceChange24H = p.PriceChange["h24"]

	if p.PairCreatedAt > 0 {
		rec.CreatedAt = time.UnixMilli(p.PairCreatedAt).UTC()
	}

	if p.Info != nil {
		rec.HasWebsite = len(p.Info.Websites) > 0
		rec.HasSocials = len(p.Info.Socials) > 0
	}

	rec.WhaleConcentration, rec.HasWhaleData = whaleConcentration(p)

	return rec
}

// whaleConcentration estimates how whale-dominated trading is from the 24h
// average trade size relative to pool depth. DexScreener exposes no holder
// table, so this is the best proxy the pair data carries.
func whaleConcentration(p *Pair) (float64, bool) {
	if p.Liquidity == nil || p.Liquidity.USD <= 0 {
		return 0, false
	}
	txns := p.Txns["h24"]
	total := txns.Buys + txns.Sells
	if total == 0 {
		return 0, false
	}

	avgTrade := p.Volume["h24"] / float64(total)
	conc := avgTrade / (whaleTradeLiquidityShare * p.Liquidity.USD)
	if conc > 1 {
		conc = 1
	}
	if conc < 0 {
		conc = 0
	}
	return conc, true
}
