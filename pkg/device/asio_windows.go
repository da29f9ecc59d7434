//go:build windows

package device

import "github.com/xsjk/go-asio"

func newASIODriver() (asioDriver, error) {
	return &asio.Device{}, nil
}
