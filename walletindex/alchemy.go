package walletindex

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"nftproxy/chain"
	"nftproxy/config"
	"nftproxy/errkind"
)

var alchemyHostByChain = map[chain.ID]string{
	chain.Ethereum: "eth-mainnet",
	chain.Arbitrum: "arb-mainnet",
	chain.Optimism: "opt-mainnet",
	chain.Base:     "base-mainnet",
	chain.Polygon:  "polygon-mainnet",
}

// Adapter lists a wallet's NFT holdings via the Alchemy NFT API
// (getNFTsForOwner), gated on an API key exactly as spec.md §6 describes.
type Adapter struct {
	apiKey  string
	pageCap int
	get     func(url string) (status int, body []byte, err error)
}

// New constructs an Adapter. apiKey is required; List fails fast when it's
// empty rather than making a doomed, unauthenticated request.
func New(apiKey string) *Adapter {
	return &Adapter{apiKey: apiKey, pageCap: config.WalletListingPageCap, get: httpGet}
}

func httpGet(url string) (int, []byte, error) {
	req := fiber.Get(url)
	status, body, errs := req.Bytes()
	if len(errs) > 0 {
		return 0, nil, errs[0]
	}
	return status, body, nil
}

type alchemyNFT struct {
	Contract struct {
		Address string `json:"address"`
	} `json:"contract"`
	TokenID string `json:"tokenId"`
	Name    string `json:"name"`
	Image   struct {
		ThumbnailURL string `json:"thumbnailUrl"`
	} `json:"image"`
	Collection struct {
		Name string `json:"name"`
	} `json:"collection"`
}

type alchemyResponse struct {
	OwnedNfts []alchemyNFT `json:"ownedNfts"`
	PageKey   string       `json:"pageKey"`
}

// List returns every NFT Alchemy reports for owner on chainID, paginating
// with the pageKey cursor until exhausted or the adapter's page cap is hit
// (spec.md §9: a heuristic safety bound, not a documented API contract).
func (a *Adapter) List(chainID chain.ID, owner string) ([]Item, error) {
	if a.apiKey == "" {
		return nil, errkind.New(errkind.Unknown, "ALCHEMY_API_KEY is not configured", false)
	}
	host, ok := alchemyHostByChain[chainID]
	if !ok {
		return nil, errkind.New(errkind.Parsing, "no Alchemy NFT API host configured for chain "+string(chainID), false)
	}

	var items []Item
	pageKey := ""
	for {
		page, nextPageKey, err := a.fetchPage(host, owner, pageKey)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)
		if nextPageKey == "" || len(items) >= a.pageCap {
			break
		}
		pageKey = nextPageKey
	}

	if len(items) > a.pageCap {
		items = items[:a.pageCap]
	}
	return items, nil
}

func (a *Adapter) fetchPage(host, owner, pageKey string) ([]Item, string, error) {
	url := fmt.Sprintf("https://%s.g.alchemy.com/nft/v3/%s/getNFTsForOwner?owner=%s", host, a.apiKey, owner)
	if pageKey != "" {
		url += "&pageKey=" + pageKey
	}

	status, body, err := a.get(url)
	if err != nil {
		return nil, "", errkind.New(errkind.Unknown, fmt.Sprintf("wallet listing request failed: %v", err), true)
	}
	if status < 200 || status >= 300 {
		return nil, "", errkind.New(errkind.Unknown, fmt.Sprintf("wallet listing returned status %d", status), status >= 500)
	}

	var resp alchemyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", errkind.New(errkind.Parsing, fmt.Sprintf("parsing wallet listing response: %v", err), false)
	}

	items := make([]Item, 0, len(resp.OwnedNfts))
	for _, nft := range resp.OwnedNfts {
		items = append(items, Item{
			Contract:     nft.Contract.Address,
			TokenID:      nft.TokenID,
			Title:        nft.Name,
			Collection:   nft.Collection.Name,
			ThumbnailURL: nft.Image.ThumbnailURL,
		})
	}
	return items, resp.PageKey, nil
}
