// Package model defines the data types shared between the orchestration core
// and the CLI/GUI front ends: download requests, progress events, dependency
// status and terminal results.
package model
