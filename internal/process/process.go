// Package process configures external converter subprocesses so that a
// cancelled conversion never leaves orphaned children behind.
package process

import "time"

// waitDelay bounds how long Wait blocks on stdio copying after the process
// has been killed.
const waitDelay = 2 * time.Second
