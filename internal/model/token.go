package model

import "strings"

// PolygonChainID is the only chain the dashboard ships token metadata for.
const PolygonChainID = 137

// Token is static metadata for a swappable asset.
type Token struct {
	ChainID     int    `json:"chainId"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    int    `json:"decimals"`
	Address     string `json:"address"`
	LogoURI     string `json:"logoURI"`
	CoinGeckoID string `json:"coingeckoId,omitempty"`
}

const polygonAssets = "https://raw.githubusercontent.com/maticnetwork/polygon-token-assets/main/assets/tokenAssets/"

var polygonTokens = []Token{
	{ChainID: PolygonChainID, Name: "Wrapped Matic", Symbol: "WMATIC", Decimals: 18,
		Address: "0x0d500b1d8e8ef31e21c99d1db9a6444d3adf1270", LogoURI: polygonAssets + "matic.svg", CoinGeckoID: "wmatic"},
	{ChainID: PolygonChainID, Name: "Wrapped Ether", Symbol: "WETH", Decimals: 18,
		Address: "0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619", LogoURI: polygonAssets + "weth.svg", CoinGeckoID: "weth"},
	{ChainID: PolygonChainID, Name: "USD Coin", Symbol: "USDC", Decimals: 6,
		Address: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", LogoURI: polygonAssets + "usdc.svg", CoinGeckoID: "usd"},
	{ChainID: PolygonChainID, Name: "Dai - PoS", Symbol: "DAI", Decimals: 18,
		Address: "0x8f3cf7ad23cd3cadbd9735aff958023239c6a063", LogoURI: polygonAssets + "dai.svg", CoinGeckoID: "dai"},
}

// TokensByChain returns the token list for a chain, or nil if none is configured.
func TokensByChain(chainID int) []Token {
	if chainID != PolygonChainID {
		return nil
	}
	out := make([]Token, len(polygonTokens))
	copy(out, polygonTokens)
	return out
}

// TokenBySymbol looks a token up by case-insensitive symbol.
func TokenBySymbol(chainID int, symbol string) (Token, bool) {
	for _, t := range TokensByChain(chainID) {
		if strings.EqualFold(t.Symbol, symbol) {
			return t, true
		}
	}
	return Token{}, false
}

// TokenByAddress looks a token up by case-insensitive contract address.
func TokenByAddress(chainID int, address string) (Token, bool) {
	for _, t := range TokensByChain(chainID) {
		if strings.EqualFold(t.Address, address) {
			return t, true
		}
	}
	return Token{}, false
}

// DefaultQuoteCurrency is the vs_currency used for charts on a chain.
func DefaultQuoteCurrency(chainID int) string {
	if chainID == PolygonChainID {
		return "usd"
	}
	return ""
}
