// Command proxyserver is the HTTP entry point exposing the NFT metadata and
// image resolution core, plus the wallet health-audit scan, over Fiber.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"nftproxy/audit"
	"nftproxy/cache"
	"nftproxy/config"
	"nftproxy/imagepipe"
	"nftproxy/metadata"
	"nftproxy/pinprobe"
	"nftproxy/rpcresolver"
	"nftproxy/server"
	"nftproxy/walletaudit"
	"nftproxy/walletindex"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file, using system environment variables:", err)
	} else {
		log.Println("Environment variables loaded successfully")
	}

	// The shared Redis tier is optional; SharedStore degrades to a no-op
	// when REDIS_ADDR is unset or unreachable, so nothing downstream needs
	// to nil-check it. It backs the image-bytes fetcher as a warm-start
	// tier behind the in-process cache (SPEC_FULL §4.1).
	shared := cache.NewSharedStore()

	ipfsGateway := config.IPFSGateway()

	rpc := rpcresolver.New(config.URICacheCapacity, config.URICacheTTL)
	metadataResolver := metadata.NewDefault(rpc, ipfsGateway)
	imageFetcher := imagepipe.NewDefaultFetcher().WithSharedStore(shared)
	imagePipeline := imagepipe.NewDefaultPipeline()
	pin := pinprobe.New(config.PinataJWT())

	classifier := audit.New(metadataResolver, pin)
	walletList := walletindex.New(config.AlchemyAPIKey())
	dispatcher := walletaudit.New(classifier, config.WalletAuditConcurrency)

	app := server.New(server.Dependencies{
		Metadata:      metadataResolver,
		ImageFetcher:  imageFetcher,
		ImagePipeline: imagePipeline,
		WalletList:    walletList,
		WalletAudit:   dispatcher,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "9085"
	}

	log.Printf("Starting HTTP server on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
