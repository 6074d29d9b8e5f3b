// Package ui groups the terminal components used by the thumbs commands.
//
// All of them write to stderr so that stdout stays clean for piping:
//
//   - [prompt]: the y/N/d confirmation shown before deleting thumbnails
//   - [static]: tables for the details view
//   - [progress]: a spinner with live counters during cleanup scans
//   - [styles]: shared lipgloss styles
package ui
