// Package domain provides the shared value types of chored: build stages and
// steps, rendered files, task invocations, and self-update modes/outcomes.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// Values are plain data; producers build them once and consumers treat them
// as read-only.
package domain
