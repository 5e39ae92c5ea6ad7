// Package server wires the resolver, metadata, image, and wallet-audit
// pipelines into a Fiber HTTP surface, per spec.md §6.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"nftproxy/imagepipe"
	"nftproxy/metadata"
	"nftproxy/middleware"
	"nftproxy/walletaudit"
	"nftproxy/walletindex"
)

// Dependencies bundles the components the HTTP surface dispatches into.
// All fields are required; main wires them together from each component
// package's constructors.
type Dependencies struct {
	Metadata      *metadata.Resolver
	ImageFetcher  *imagepipe.Fetcher
	ImagePipeline *imagepipe.Pipeline
	WalletList    *walletindex.Adapter
	WalletAudit   *walletaudit.Dispatcher
}

// New builds the Fiber app: security middleware first, then CORS, then one
// rate-limited route group per endpoint, following the teacher's
// main.go/routes layout. Authentication middleware is deliberately not
// mounted anywhere in this app.
func New(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "nftproxy",
		ServerHeader: "nftproxy",
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": "request could not be processed"})
		},
	})

	middleware.SetupSecurityMiddleware(app)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin,Content-Type,Accept",
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	rateLimiter := limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Get("x-forwarded-for", c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded, please try again later",
			})
		},
	})

	// Fiber matches routes in registration order, so the audit route must
	// precede /:chain/:contract/:tokenId, which would otherwise capture
	// "audit" as a token id.
	registerAuditRoute(app, rateLimiter, deps.WalletList, deps.WalletAudit)
	registerMetadataRoute(app, rateLimiter, deps.Metadata)
	registerImageRoute(app, rateLimiter, deps.Metadata, deps.ImageFetcher, deps.ImagePipeline)

	return app
}
