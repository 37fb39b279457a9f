// Package latency implements a per-peer streaming median filter for
// observed RTT samples, used to smooth the noisy latency measurements fed
// into a coordinate update. The filter itself never decides what counts
// as a "sample" or schedules anything; it just answers "what's the
// current median for peer K" in O(1) amortized time and O(window) space
// per peer, per:
//
//	Ekstrom, Mark. "Better Than Average: A Fast, Cheap Running Median
//	Filter." (2000).
package latency

import "math"

// Filter holds one sliding-window median buffer per key K, typically a
// peer identity (address, node ID, whatever the caller already uses to
// distinguish remote hosts). Like coordinate.Coordinate and node.Node, a
// Filter carries no internal locking: concurrent Push/Get/Discard calls
// on the same Filter are a programming error.
type Filter[K comparable, T Float] struct {
	window int
	peers  map[K]*buffer[T]
}

// NewFilter returns an empty Filter with the given window size. Panics if
// window <= 0: a filter with no window can't hold a sample, which is a
// programming error in the caller, not a runtime condition.
func NewFilter[K comparable, T Float](window int) *Filter[K, T] {
	if window <= 0 {
		panic("latency: NewFilter called with non-positive window")
	}
	return &Filter[K, T]{
		window: window,
		peers:  make(map[K]*buffer[T]),
	}
}

// Push records rtt as the latest sample for k, creating k's buffer on
// first use, and returns the new median for k. Panics if rtt is NaN or
// infinite: a non-finite sample is a programming error upstream, not
// something this filter can silently absorb.
func (f *Filter[K, T]) Push(k K, rtt T) T {
	if isNaN(rtt) {
		panic("latency: Push called with NaN rtt")
	}
	if math.IsInf(float64(rtt), 0) {
		panic("latency: Push called with infinite rtt")
	}

	b, ok := f.peers[k]
	if !ok {
		b = newBuffer[T](f.window)
		f.peers[k] = b
	}
	return b.push(rtt)
}

// Get returns k's current median, or NaN if k has never been pushed.
func (f *Filter[K, T]) Get(k K) T {
	b, ok := f.peers[k]
	if !ok {
		var nan T
		return nan / nan
	}
	return b.value()
}

// Min returns the smallest live sample in k's window, or NaN if k has
// never been pushed.
func (f *Filter[K, T]) Min(k K) T {
	b, ok := f.peers[k]
	if !ok {
		var nan T
		return nan / nan
	}
	return b.min()
}

// Max returns the largest live sample in k's window, or NaN if k has
// never been pushed.
func (f *Filter[K, T]) Max(k K) T {
	b, ok := f.peers[k]
	if !ok {
		var nan T
		return nan / nan
	}
	return b.max()
}

// Discard drops k's buffer entirely. A no-op if k is absent: an absent
// peer is not an error condition.
func (f *Filter[K, T]) Discard(k K) {
	delete(f.peers, k)
}

// Clear drops every peer's buffer, resetting the Filter to empty.
func (f *Filter[K, T]) Clear() {
	f.peers = make(map[K]*buffer[T])
}
