// Package textutil provides small text helpers shared by the stage
// definitions and the report renderers: count phrases, a generic
// conditional, and flattening of multi-line error text into one line.
package textutil
