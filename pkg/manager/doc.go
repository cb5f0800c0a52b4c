// Package manager provides the host-facing convenience layer over a
// batch-native types.ManagerInterface.
//
// Every batch operation is exposed in five calling conventions, each a
// separately named, statically typed method:
//
//   - BatchXxx: raw callback pass-through
//   - Xxx: batch input, failing return (first failure by index)
//   - XxxResults: batch input, per-element Result values
//   - XxxOne: single input, failing return
//   - XxxOneResult: single input, Result value
//
// All conventions funnel into exactly one ManagerInterface call. Input
// validation happens before the back-end is reached; per-element
// outcomes are re-ordered into input order regardless of callback
// arrival order, and no convenience method returns before every
// element's outcome is known.
package manager
