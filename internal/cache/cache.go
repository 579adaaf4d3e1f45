// Package cache memoizes upstream responses per credential.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache maps (endpoint, normalized params, credential) to a response body.
// Stored bodies are treated as immutable; callers must not modify them.
type Cache struct {
	lru *expirable.LRU[string, []byte]
}

// New returns a cache holding at most size entries for ttl each.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 256
	}
	return &Cache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Key builds the lookup key. Params are sorted so equivalent queries collide,
// and the credential is hashed so it never sits in memory as a map key.
func Key(endpoint string, params url.Values, credential string) string {
	return credentialPrefix(credential) + endpoint + "?" + normalize(params)
}

func credentialPrefix(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:]) + "|"
}

func normalize(params url.Values) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		vals := append([]string(nil), params[k]...)
		sort.Strings(vals)
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(strings.Join(vals, ",")))
	}
	return sb.String()
}

func (c *Cache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *Cache) Add(key string, body []byte) {
	c.lru.Add(key, body)
}

// Invalidate drops every entry belonging to credential and returns how many were removed.
func (c *Cache) Invalidate(credential string) int {
	prefix := credentialPrefix(credential)
	removed := 0
	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) && c.lru.Remove(k) {
			removed++
		}
	}
	return removed
}

// Purge drops everything.
func (c *Cache) Purge() {
	c.lru.Purge()
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
