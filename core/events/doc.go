// Package events defines what the calculation service emits on the event bus.
//
// Available event types:
//   - CalculationEvent: inputs were accepted and a breakdown was computed
//   - RejectedEvent: inputs failed validation
package events
