//go:build !cgo

package soapy

// SoapySDR is a C library; without cgo the driver is not registered.
const DriverName = "soapy"
