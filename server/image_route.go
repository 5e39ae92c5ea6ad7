package server

import (
	"fmt"
	"html"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"nftproxy/chain"
	"nftproxy/httpglue"
	"nftproxy/imagepipe"
	"nftproxy/metadata"
	"nftproxy/utils"
)

// registerImageRoute mounts GET /:chain/:contract/:tokenId/image, serving
// transformed image bytes, or with raw=1 the source bytes of a data: image
// and a redirect to the source URL otherwise, per spec.md §6.
func registerImageRoute(app *fiber.App, limit fiber.Handler, resolver *metadata.Resolver, fetcher *imagepipe.Fetcher, pipeline *imagepipe.Pipeline) {
	group := app.Group("/")
	group.Use(limit)

	group.Get("/:chain/:contract/:tokenId/image", func(c *fiber.Ctx) error {
		start := time.Now()
		debug := c.Query("debug") == "1"
		wantJSON := c.Query("json") == "1"

		chainID, ok := chain.Normalize(c.Params("chain"))
		if !ok {
			return imageError(c, fmt.Errorf("unknown chain: %s", c.Params("chain")), fiber.StatusBadRequest, wantJSON, debug)
		}

		meta, err := resolver.Resolve(c.Context(), chainID, c.Params("contract"), c.Params("tokenId"), metadata.Options{
			RPCURLOverride: c.Query("rpcUrl"),
		})
		if err != nil {
			log.Printf("image route: metadata resolve failed after %s: %v", time.Since(start), err)
			return imageError(c, err, utils.StatusFor(err), wantJSON, debug)
		}
		if meta.ImageURL == "" {
			return imageError(c, fmt.Errorf("token metadata carries no image field"), fiber.StatusNotFound, wantJSON, debug)
		}

		fetched, err := fetcher.Fetch(c.Context(), meta.ImageURL)
		if err != nil {
			log.Printf("image route: fetch failed after %s: %v", time.Since(start), err)
			return imageError(c, err, utils.StatusFor(err), wantJSON, debug)
		}

		if c.Query("raw") == "1" {
			return serveRaw(c, meta.ImageURL, fetched)
		}

		w, _ := strconv.Atoi(c.Query("w"))
		h, _ := strconv.Atoi(c.Query("h"))
		q, _ := strconv.Atoi(c.Query("q"))
		transformed, err := pipeline.Transform(fetched, imagepipe.Options{
			Width:              w,
			Height:             h,
			Quality:            q,
			PermitSVGRasterize: c.Query("svg") != "1",
		})
		if err != nil {
			log.Printf("image route: transform failed after %s: %v", time.Since(start), err)
			return imageError(c, err, utils.StatusFor(err), wantJSON, debug)
		}
		if transformed == nil {
			return serveBytes(c, fetched.ContentType, fetched.Bytes)
		}
		return serveBytes(c, transformed.ContentType, transformed.Bytes)
	})
}

// serveRaw returns the fetched bytes directly, or a 302 redirect to the
// source URL when the source isn't a data: URL (spec.md §6 raw=1 contract).
func serveRaw(c *fiber.Ctx, sourceURL string, fetched imagepipe.Fetched) error {
	if len(sourceURL) >= 5 && sourceURL[:5] == "data:" {
		return serveBytes(c, fetched.ContentType, fetched.Bytes)
	}
	return c.Redirect(sourceURL, fiber.StatusFound)
}

func serveBytes(c *fiber.Ctx, contentType string, body []byte) error {
	etag := httpglue.WeakETag(body)
	if httpglue.ApplyCaching(c, etag, httpglue.DefaultMaxAge) {
		return nil
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}

// imageError serves the spec's SVG placeholder for image errors, unless
// json=1 was requested on the route.
func imageError(c *fiber.Ctx, err error, status int, wantJSON, debug bool) error {
	if wantJSON {
		return utils.HandleError(c, err, "image could not be served", debug)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Status(status)
	return c.SendString(placeholderSVG(err.Error()))
}

func placeholderSVG(message string) string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="512" height="512" viewBox="0 0 512 512">`+
			`<rect width="512" height="512" fill="#1a1a1a"/>`+
			`<text x="50%%" y="50%%" fill="#cccccc" font-family="sans-serif" font-size="18" text-anchor="middle" dominant-baseline="middle">%s</text>`+
			`</svg>`,
		html.EscapeString(message),
	)
}
