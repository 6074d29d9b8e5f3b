// Package prompt provides interactive prompts.
//
//   - [Confirm]: yes / no / details prompt shown before destructive actions
package prompt
