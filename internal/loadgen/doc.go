// Package loadgen burns CPU for a fixed duration so that autoscaling policies
// can be exercised. Workers are fire-and-forget: once started they cannot be
// cancelled or awaited by the caller, and overlapping starts each get their
// own worker with no back-pressure.
package loadgen
