// Package hooks models the host's term screen and term lifecycle events as
// named hook lists.
package hooks
