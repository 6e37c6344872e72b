// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package cache provides the in-memory TTL cache in front of the direct
profile ranking endpoint.

Ranking a profile is deterministic for a fixed catalog, so identical
requests within the TTL are answered from memory. Keys are built with
GenerateKey from the request's canonical JSON form.

	products := cache.New[*recommend.Response]("products", 5*time.Minute, 1000)
	key := cache.GenerateKey("products", req)
	if resp, ok := products.Get(key); ok {
	    return resp
	}

Lookups update the cache_hits_total and cache_misses_total counters and
the cache_entries gauge, labelled with the cache name. Expired entries are
swept by Serve, which runs as a supervised service in the data layer.
*/
package cache
