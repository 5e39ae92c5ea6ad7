package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"nftproxy/chain"
	"nftproxy/httpglue"
	"nftproxy/utils"
	"nftproxy/walletaudit"
	"nftproxy/walletindex"
)

// registerAuditRoute mounts GET /:chain/:wallet/audit: lists the wallet's
// holdings via the wallet-listing adapter, then fans out one health-audit
// task per token, per spec.md §4.9/§4.10 and the implied wallet-scan HTTP
// surface of §4.11.
func registerAuditRoute(app *fiber.App, limit fiber.Handler, listing *walletindex.Adapter, dispatcher *walletaudit.Dispatcher) {
	group := app.Group("/")
	group.Use(limit)

	group.Get("/:chain/:wallet/audit", func(c *fiber.Ctx) error {
		start := time.Now()
		debug := c.Query("debug") == "1"

		chainID, ok := chain.Normalize(c.Params("chain"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown chain: " + c.Params("chain")})
		}
		wallet := c.Params("wallet")
		if !utils.ValidateEthereumAddress(wallet) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "wallet is not a 20-byte hex address"})
		}

		items, err := listing.List(chainID, wallet)
		if err != nil {
			log.Printf("wallet audit: listing failed for %s/%s after %s: %v", chainID, wallet, time.Since(start), err)
			return utils.HandleError(c, err, "wallet listing could not be retrieved", debug)
		}

		results := dispatcher.Audit(c.Context(), chainID, items)
		record := walletaudit.Summarize(chainID, wallet, results, time.Now())

		body, err := json.Marshal(record)
		if err != nil {
			return utils.HandleError(c, err, "wallet audit could not be encoded", debug)
		}

		etag := httpglue.WeakETag(body)
		if httpglue.ApplyCaching(c, etag, 30*time.Second) {
			return nil
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	})
}
