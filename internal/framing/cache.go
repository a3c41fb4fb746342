package framing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache memoises encoded derivatives so re-rendering unchanged parameters is free.
type Cache struct {
	c *cache.Cache
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Cache{c: cache.New(ttl, 2*ttl)}
}

// Digest returns a stable identifier for source image bytes.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func cacheKey(digest string, t Target, p Params) string {
	p = p.Normalize()
	return fmt.Sprintf("%s|%s|%dx%d|%.4f|%.4f|%.4f", digest, t, p.Width, p.Height, p.Zoom, p.OffsetX, p.OffsetY)
}

// Render frames src for the target and encodes it, reusing a cached result for the
// same source digest and parameters.
func (c *Cache) Render(src image.Image, digest string, t Target, p Params) ([]byte, error) {
	key := cacheKey(digest, t, p)
	if c != nil {
		if v, ok := c.c.Get(key); ok {
			return v.([]byte), nil
		}
	}

	data, err := Encode(Frame(src, p), t)
	if err != nil {
		return nil, err
	}

	if c != nil {
		c.c.SetDefault(key, data)
	}
	return data, nil
}

// Len returns the number of cached derivatives.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.c.ItemCount()
}
