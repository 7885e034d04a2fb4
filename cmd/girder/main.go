// SPDX-License-Identifier: MPL-2.0

// Command girder generates package descriptors and install manifests from
// a CUE build manifest.
package main

func main() {
	Execute()
}
