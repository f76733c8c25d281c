// Package demo runs the workbench's bundled sample workload: a tiny
// point-tracking ledger ("DKP" — dragon kill points, a guild loot-split
// convention) parsed line by line, grouped by person, reduced to a
// total, and ranked by a deliberately naive bucket pass. Every
// allocation, mutation and collection along the way runs through a
// heapvm.Machine so the whole computation is visible in the trace.
package demo
