// Package slot provides backends for the single named storage location that
// holds a whole serialized collection. Every backend replaces the stored
// value in one step and reports a slot that was never written as nil data.
package slot

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "inventory_items"
