// Package planner turns a discovered candidate set into a CombinePlan: which
// parts to concatenate, in which order, into which file, or whether no
// combination is needed at all.
//
// Ordering only replaces the lexicographic glob order when there are more
// candidates than the sort threshold; below it the glob order is already
// correct for zero-padded suffixes.
package planner
