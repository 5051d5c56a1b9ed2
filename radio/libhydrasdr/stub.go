//go:build !cgo

package libhydrasdr

// Without cgo the vendor library cannot be linked and the driver is not
// registered; pick another one with --driver.
const DriverName = "libhydrasdr"
