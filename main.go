// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/dirtags/dirtags/cmd/dirtags"

func main() {
	cmd.Execute()
}
