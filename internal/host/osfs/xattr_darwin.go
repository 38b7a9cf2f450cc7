// SPDX-License-Identifier: MPL-2.0

package osfs

import (
	"errors"

	"golang.org/x/sys/unix"
)

// errNoAttr is what getxattr returns for a file without the attribute.
var errNoAttr error = unix.ENOATTR

func isNoAttr(err error) bool {
	return errors.Is(err, errNoAttr)
}
