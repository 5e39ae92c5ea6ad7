package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"nftproxy/chain"
	"nftproxy/httpglue"
	"nftproxy/metadata"
	"nftproxy/utils"
)

// registerMetadataRoute mounts GET /:chain/:contract/:tokenId, returning
// the resolved MetadataRecord as JSON, per spec.md §6.
func registerMetadataRoute(app *fiber.App, limit fiber.Handler, resolver *metadata.Resolver) {
	group := app.Group("/")
	group.Use(limit)

	group.Get("/:chain/:contract/:tokenId", func(c *fiber.Ctx) error {
		start := time.Now()

		chainID, ok := chain.Normalize(c.Params("chain"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown chain: " + c.Params("chain")})
		}

		opts := metadata.Options{
			RPCURLOverride: c.Query("rpcUrl"),
			SkipCache:      c.Query("refresh") == "1",
		}
		debug := c.Query("debug") == "1"

		record, err := resolver.Resolve(c.Context(), chainID, c.Params("contract"), c.Params("tokenId"), opts)
		if err != nil {
			log.Printf("metadata resolve failed for %s/%s/%s after %s: %v", chainID, c.Params("contract"), c.Params("tokenId"), time.Since(start), err)
			return utils.HandleError(c, err, "metadata could not be resolved", debug)
		}

		body, err := json.Marshal(record)
		if err != nil {
			return utils.HandleError(c, err, "metadata could not be encoded", debug)
		}

		etag := httpglue.WeakETag(body)
		if httpglue.ApplyCaching(c, etag, httpglue.DefaultMaxAge) {
			return nil
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	})
}
