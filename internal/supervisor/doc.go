// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package supervisor provides process supervision for Giftmatch using suture v4.

The tree has two layers for failure isolation:

	RootSupervisor ("giftmatch")
	├── DataSupervisor ("data-layer")
	│   ├── language-store-gc   (Badger value-log GC, on-disk store only)
	│   ├── duckdb-checkpoint
	│   └── products-cache-cleanup
	└── APISupervisor ("api-layer")
	    └── http-server

A crash in a maintenance task restarts only that task; the HTTP server
keeps serving. Supervisor events are logged through sutureslog into the
zerolog logger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewPeriodicService("duckdb-checkpoint", 10*time.Minute, db.Checkpoint))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor tree stopped")
	}

Services must return from Serve promptly once their context is canceled;
UnstoppedServiceReport lists those that did not within ShutdownTimeout.
*/
package supervisor
