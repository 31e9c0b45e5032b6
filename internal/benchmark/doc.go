// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// These benchmarks cover the hot paths of xsort:
//   - Key definition parsing and field extraction
//   - Numeric, general numeric and collated field comparison
//   - In-memory sorting, spilling and k-way merging
//   - Configuration loading and schema validation
//
// To generate a PGO profile, run:
//
//	go test ./internal/benchmark -run '^$' -bench . -cpuprofile default.pgo
package benchmark
