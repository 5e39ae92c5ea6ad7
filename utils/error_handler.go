package utils

import (
	"log"
	"runtime"

	"github.com/gofiber/fiber/v2"

	"nftproxy/config"
	"nftproxy/errkind"
)

// ErrorResponse represents a standardized JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Debug *Debug `json:"debug,omitempty"`
}

// Debug carries the classified error detail surfaced only when a request
// asked for it and the process isn't running in production.
type Debug struct {
	Kind        errkind.Kind      `json:"kind"`
	Transient   bool              `json:"transient"`
	Attempts    []errkind.Attempt `json:"attempts,omitempty"`
	InternalMsg string            `json:"internalMessage"`
}

// StatusFor maps a classified error onto the HTTP status its kind implies.
func StatusFor(err error) int {
	e, ok := errkind.As(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch e.Kind {
	case errkind.Parsing:
		return fiber.StatusBadRequest
	case errkind.RPC, errkind.MetadataFetch, errkind.ImageFetch:
		if e.Transient {
			return fiber.StatusBadGateway
		}
		return fiber.StatusNotFound
	case errkind.Contract:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError logs the error internally and returns a sanitized JSON error
// to the client, attaching classified detail when debug is requested and
// the process isn't running in production.
func HandleError(c *fiber.Ctx, err error, userMessage string, debug bool) error {
	pc, file, line, _ := runtime.Caller(1)
	funcName := runtime.FuncForPC(pc).Name()
	log.Printf("Error in %s (%s:%d): %v", funcName, file, line, err)

	status := StatusFor(err)
	resp := ErrorResponse{Error: userMessage, Code: string(classifyCode(err))}

	if debug && !config.IsProduction() {
		if e, ok := errkind.As(err); ok {
			resp.Debug = &Debug{Kind: e.Kind, Transient: e.Transient, Attempts: e.Attempts, InternalMsg: e.Message}
		} else {
			resp.Debug = &Debug{Kind: errkind.Unknown, InternalMsg: err.Error()}
		}
	}

	return c.Status(status).JSON(resp)
}

func classifyCode(err error) errkind.Kind {
	if e, ok := errkind.As(err); ok {
		return e.Kind
	}
	return errkind.Unknown
}
