// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"fmt"
	"slices"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CodeCache retains recently used contract codes by their hash. Codes are
// immutable once deployed, so cached entries never go stale.
type CodeCache struct {
	cache *lru.Cache[guillotine.Hash, guillotine.Code]
}

// maxCachedCodeLength is the maximum length of a code retained in the
// cache. Longer codes are init codes which are rarely re-used.
const maxCachedCodeLength = 1<<14 + 1<<13 // = 24_576 bytes

// DefaultCodeCacheSize is the number of codes retained by a cache created
// with size 0.
const DefaultCodeCacheSize = 4096

// NewCodeCache creates a cache retaining up to size codes. A size of zero
// selects DefaultCodeCacheSize.
func NewCodeCache(size int) (*CodeCache, error) {
	if size == 0 {
		size = DefaultCodeCacheSize
	}
	if size < 0 {
		return nil, fmt.Errorf("invalid code cache size %d", size)
	}
	cache, err := lru.New[guillotine.Hash, guillotine.Code](size)
	if err != nil {
		return nil, err
	}
	return &CodeCache{cache: cache}, nil
}

// Get returns the code with the given hash, calling load on a cache miss.
// The result is a copy the caller may modify.
func (c *CodeCache) Get(hash guillotine.Hash, load func() guillotine.Code) guillotine.Code {
	if c == nil {
		return load()
	}
	if code, found := c.cache.Get(hash); found {
		return slices.Clone(code)
	}
	code := load()
	if len(code) <= maxCachedCodeLength {
		c.cache.Add(hash, slices.Clone(code))
	}
	return code
}

// Len returns the number of cached codes.
func (c *CodeCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
