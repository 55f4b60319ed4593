package device

import "fmt"

// UnsupportedDevice is returned by Connect when Descriptor.Family
// does not match any registered vendor constructor.
type UnsupportedDevice struct {
	Family Family
}

func (e *UnsupportedDevice) Error() string {
	return fmt.Sprintf("device: unsupported family %q", e.Family)
}
