// Package device is the public entry point: a Descriptor plus a
// device-family tag yields a DeviceConnection through Connect,
// the factory that dials the transport and wires up the matching vendor
// state machine from pkg/vendor.
package device
