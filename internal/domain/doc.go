// Package domain contains the core entities of the learning engine:
// vocabulary words, per-user scheduling state, and answer outcomes. It is
// independent of any storage or delivery mechanism.
package domain
