// SPDX-License-Identifier: MPL-2.0

// Package platform holds the runtime.GOOS names envcmd branches on.
package platform
