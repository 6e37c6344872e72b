// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package services provides suture.Service wrappers for long-running
components.

Each wrapper translates a component lifecycle into suture's
Serve(ctx) error and identifies itself through fmt.Stringer.

  - HTTPServerService: the API server with graceful shutdown (api layer)
  - PeriodicService: interval tasks such as the Badger value-log GC and
    the DuckDB checkpoint (data layer)

The product cache needs no wrapper; *cache.Cache implements Serve and
String itself.
*/
package services
