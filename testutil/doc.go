// Package testutil provides test doubles and helpers for pipeline builds.
//
// MockDevice is a device.Device with a configurable profile, call counting and
// error injection. RecordingHandler is a slog.Handler that keeps every record
// so tests can assert on warnings. Kinds and Names reduce a node list to its
// shape for table-driven comparisons.
//
//	dev := testutil.NewMockDevice(device.OAKDProfile()...)
//	logs := testutil.NewRecordingHandler()
//	host := &node.Host{Logger: slog.New(logs)}
//
//	nodes, err := variant.CreatePipeline(ctx, host, dev, pl, "spatial")
//	assert.Equal(t, []node.Kind{node.KindSensor}, testutil.Kinds(nodes))
//	assert.Equal(t, 1, logs.Count(slog.LevelWarn))
package testutil
