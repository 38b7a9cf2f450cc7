// SPDX-License-Identifier: MPL-2.0

//go:build !linux && !darwin

package osfs

import "errors"

var errXattrUnsupported = errors.New("extended attributes are not supported on this platform")

func readXattr(string, string) ([]byte, error) {
	return nil, errXattrUnsupported
}

func isNoAttr(error) bool { return false }

func isUnsupported(err error) bool {
	return errors.Is(err, errXattrUnsupported)
}
