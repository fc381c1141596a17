// Package docalc is the facade binding model, dag, eval, and calculus
// behind the query API from spec §6: P, BackdoorPaths, DeconfoundingSets,
// JointDistributionTable, TopologicalOrder.
package docalc
