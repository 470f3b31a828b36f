// Package common keeps small types shared between configuration and the
// rewrite engine so that neither has to import the other.
package common

// Markup region the engine knows how to rewrite. Order of declaration is the
// order of rewrite steps.
// ENUM(color, title, logo, topnav, sidenav)
type FragmentKind int

// Final state of a single document after a batch.
// ENUM(unchanged, rewritten, failed, cancelled)
type Outcome int
