// Package pool multiplexes device.DeviceConnection sessions through a
// per-device bounded pool with semaphore-based admission control: no
// more than max_per_device live connections exist for one device at any
// time, idle connections are reused before a new one is dialed, and a
// background sweeper closes connections that have sat idle past
// connection_idle_timeout.
package pool
