// Package instrumentation provides OpenTelemetry metrics for daybrief.
//
// It records token refresh and authorization-code exchange attempts plus
// per-source calendar fetch counts and durations. Metrics are exported with
// the stdout exporter when enabled via the --metrics flag; the disabled
// provider hands out a no-op recorder so call sites never branch.
package instrumentation
