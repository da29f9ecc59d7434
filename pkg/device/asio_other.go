//go:build !windows

package device

import "errors"

func newASIODriver() (asioDriver, error) {
	return nil, errors.New("asio: only available on windows")
}
