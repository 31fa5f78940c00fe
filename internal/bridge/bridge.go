// Package bridge is the boundary a host runtime calls to confirm the numeric
// core is linked and callable.
package bridge

// Status is the marker returned across the host boundary.
type Status string

// StatusOK is the only status Nop returns.
const StatusOK Status = "ok"

// Nop does nothing and reports StatusOK. Hosts call it once at startup.
func Nop() Status { return StatusOK }
