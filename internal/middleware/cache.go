package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation/internal/config"
)

// captureWriter mirrors the response into a buffer, up to limit bytes, while
// still streaming it to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 {
		cw.buf.Write(b)
	} else if remain := cw.limit - cw.size; remain > 0 {
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// cacheKeyFrom always folds the staff identity into the key. Responses
// behind the auth middleware differ per caller (role-filtered lists, /me),
// so a key without the identity would leak one staff member's response to
// another.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	parts := []string{cfg.Prefix, "staff", strconv.FormatUint(StaffID(c), 10)}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = append(parts, "route", c.Path())
	case "method_route":
		parts = append(parts, "method", r.Method, "route", c.Path())
	default: // "route_query"
		parts = append(parts, "route", c.Path(), "q", r.URL.RawQuery)
	}
	tail := strings.Join(parts[1:], ":")
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%x", parts[0], sum[:])
}

// Payload layout: [4 bytes status][4 bytes headerLen][headerJSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// NewRedisCache caches successful GET responses in Redis, keyed per staff
// member. It must be mounted on route groups after JWTAuth; mounted globally
// it would run before the auth check and serve cached bodies to callers the
// gate would have rejected. Availability queries dominate read traffic and
// tolerate a short TTL; anything mutated goes through POST/PATCH and is
// never cached.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKeyFrom(cfg, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if strings.EqualFold(k, "Content-Length") {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						_, _ = c.Response().Write(body)
					}
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && (maxBody <= 0 || cw.size <= maxBody) {
				hdr := make(http.Header, len(c.Response().Header()))
				for k, vals := range c.Response().Header() {
					vv := make([]string, len(vals))
					copy(vv, vals)
					hdr[k] = vv
				}
				if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
					_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}
