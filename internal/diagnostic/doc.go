// Package diagnostic provides structured, per-file reports for batch
// conversions.
//
// Key capabilities:
//   - Classification of conversion errors into stable codes
//   - Source position and tree path of the offending value
//   - Aggregation across many inputs
package diagnostic
