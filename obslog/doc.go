// Package obslog provides structured logging for the core, threaded
// explicitly through a context.Context and never held in a package-level
// global (spec §9: "Global state ... must be passed explicitly as a context
// parameter to all core operations").
package obslog
