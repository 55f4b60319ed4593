package device

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsUnsupportedFamily(t *testing.T) {
	_, err := Connect(context.Background(), Descriptor{Family: "cisco_catalyst_mystery"})
	require.Error(t, err)
	var unsupported *UnsupportedDevice
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, Family("cisco_catalyst_mystery"), unsupported.Family)
}

func TestConnectRejectsMalformedPrivateKey(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Connect(ctx, Descriptor{
		Family:        FamilyIOS,
		Host:          "127.0.0.1",
		Port:          1,
		PrivateKeyPEM: []byte("not a real key"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing private key")
}
