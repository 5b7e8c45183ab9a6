package middlewares

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"article-registry-backend/database"
	"article-registry-backend/models"

	"github.com/gofiber/fiber/v2"
)

// IdempotencyStore persists idempotency records. A missing key is (nil, nil)
// from FindKey; CreateKey returns database.ErrDuplicateKey when racing.
type IdempotencyStore interface {
	FindKey(ctx context.Context, key string) (*models.IdempotencyKey, error)
	CreateKey(ctx context.Context, rec models.IdempotencyKey) error
	CompleteKey(ctx context.Context, key string, status int, body []byte) error
}

// Idempotency processes Idempotency-Key for mutating HTTP methods. The first
// request under a key runs normally and its response is stored; a replay
// with the same key and body gets the stored response without re-running the
// handler. Key reuse with a different request is rejected.
func Idempotency(store IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch && method != fiber.MethodDelete {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get("Idempotency-Key"))
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return fiber.NewError(fiber.StatusBadRequest, "Idempotency-Key too long")
		}

		path := c.OriginalURL() // includes query string
		body := c.Body()

		// Deterministic request hash: method|path|body
		h := sha256.New()
		h.Write([]byte(method))
		h.Write([]byte{'\n'})
		h.Write([]byte(path))
		h.Write([]byte{'\n'})
		h.Write(body)
		reqHash := hex.EncodeToString(h.Sum(nil))

		ctx := c.Context()
		existing, err := store.FindKey(ctx, key)
		if err != nil {
			return err
		}
		if existing == nil {
			rec := models.IdempotencyKey{
				Key:         key,
				RequestHash: reqHash,
				Method:      method,
				Path:        path,
				CreatedAt:   time.Now().UTC(),
			}
			if err := store.CreateKey(ctx, rec); err != nil {
				if !errors.Is(err, database.ErrDuplicateKey) {
					return err
				}
				// Lost the unique-index race: another request owns the key
				if existing, err = store.FindKey(ctx, key); err != nil {
					return err
				}
			} else {
				existing = &rec
			}
		}
		if existing != nil {
			if existing.RequestHash != reqHash {
				return fiber.NewError(fiber.StatusConflict, "Idempotency-Key reuse with different request")
			}
			if existing.ResponseStatus != 0 && existing.ResponseBody != nil {
				// Completed response stored, short-circuit (no handler run)
				c.Status(existing.ResponseStatus)
				return c.Send(existing.ResponseBody)
			}
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Best-effort: a failed store write must not break the response
		status := c.Response().StatusCode()
		resp := c.Response().Body()
		blob := make([]byte, len(resp))
		copy(blob, resp)
		_ = store.CompleteKey(ctx, key, status, blob)

		return nil
	}
}
