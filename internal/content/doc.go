// Package content provides the authored training content model.
//
// Authors write scenarios as a flat list of events. Each event becomes one
// scene; its options are the branching answers a trainee can choose. The
// package only decodes and normalizes that input. Grouping, identifiers and
// SQL belong to the convert and sqlgen packages.
//
// Key constraints:
//   - Keys use the authored camelCase names (sceneId, answerId, nextId)
//   - Points are integers; a missing points object means "not correct"
//   - All text is NFC-normalized on decode
package content
