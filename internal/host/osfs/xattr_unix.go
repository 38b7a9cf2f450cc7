// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin

package osfs

import (
	"errors"

	"golang.org/x/sys/unix"
)

// readXattr returns the value of attribute name on path, following symlinks.
// The value is re-read if it grows between the size query and the read.
func readXattr(path, name string) ([]byte, error) {
	for {
		size, err := unix.Getxattr(path, name, nil)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return nil, nil
		}

		buf := make([]byte, size)
		n, err := unix.Getxattr(path, name, buf)
		if errors.Is(err, unix.ERANGE) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	}
}

func isUnsupported(err error) bool {
	return errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EOPNOTSUPP)
}
