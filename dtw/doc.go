// Package dtw computes Dynamic Time Warping (DTW) distances between
// numeric time series, with optional alignment path and memory optimizations.
//
// In crowdsim the one series being compared is a recorded agent trajectory
// against its replay: recorder.TrajectoryDistance flattens each to an
// interleaved (x,y) scalar sequence and calls DTW with a narrow window, so
// that law holds up to small timing drift between the two runs without
// a raw per-frame compare flagging a one-tick lag as a real divergence.
//
// Key features:
//   - full-matrix mode: exact O(N·M) time & memory
//   - rolling mode: O(M) memory, M=len(b) (choose via MemoryMode)
//   - optional Sakoe–Chiba window (|i−j| ≤ w) for speed & constraint
//   - slope penalty to discourage excessive stretching
//   - on-demand alignment path (ReturnPath=true)
//
// Usage:
//
//	opts := dtw.DefaultOptions()
//	opts.Window = 2 // tight band: replay should track, not merely resemble
//	dist, _, err := dtw.DTW(flattenedA, flattenedB, &opts)
//
// Performance:
//
//   - Time:   O(N·M)
//   - Memory: O(N·M) (FullMatrix) or O(M) (TwoRows, NoMemory)
package dtw
