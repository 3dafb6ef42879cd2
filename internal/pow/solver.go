// Package pow implements the brute-force proof-of-work search that gates
// block admission. The search digest is configurable and deliberately
// decoupled from the SHA-256 content hash used for block linkage: the search
// only needs a fast, uniform-looking function, not a secure one.
package pow

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"math"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPrefix is the required run of leading zero hex digits.
	DefaultPrefix = "0000"

	// defaultChunkSize is how many candidate solutions a worker claims at a
	// time, and how often the sequential loop polls for cancellation.
	defaultChunkSize = 4096
)

// Solver searches for the smallest positive integer s such that the hex
// digest of the decimal string seed+s starts with Prefix. The zero value is
// ready to use: MD5, four zero digits, single-threaded.
type Solver struct {
	// Prefix is the required leading hex digits of a winning digest.
	// Empty means DefaultPrefix.
	Prefix string

	// Digest constructs the search digest. Nil means MD5.
	Digest func() hash.Hash

	// Workers is the number of concurrent searchers. Values below 2 select
	// the sequential search. Parallel workers claim disjoint ascending
	// ranges of the solution space, so the returned solution is the same
	// one the sequential search would find.
	Workers int

	// ChunkSize is the size of the ranges workers claim. Zero means
	// defaultChunkSize.
	ChunkSize uint64
}

// NewSolver returns a solver with the given difficulty, expressed as the
// number of leading zero hex digits a winning digest must carry.
func NewSolver(difficulty int) *Solver {
	prefix := DefaultPrefix
	if difficulty > 0 {
		b := make([]byte, difficulty)
		for i := range b {
			b[i] = '0'
		}
		prefix = string(b)
	}
	return &Solver{Prefix: prefix}
}

// Solve runs the search for the given non-negative seed. It returns the first
// solution in 1, 2, 3, ... whose digest matches the prefix, or ctx.Err() if
// the context is cancelled first. With an unsatisfiable prefix and an
// unbounded context the search does not terminate; callers that need a
// latency bound must supply a deadline.
func (s *Solver) Solve(ctx context.Context, seed int64) (uint64, error) {
	if seed < 0 {
		return 0, fmt.Errorf("seed must be non-negative, got %d", seed)
	}
	prefix := s.prefix()
	chunk := s.chunkSize()
	if s.Workers < 2 {
		return s.solveSequential(ctx, uint64(seed), prefix, chunk)
	}
	return s.solveParallel(ctx, uint64(seed), prefix, chunk)
}

// Check reports whether solution seals seed under the solver's difficulty.
func (s *Solver) Check(seed int64, solution uint64) bool {
	if seed < 0 {
		return false
	}
	return s.attempt(s.newDigest(), uint64(seed), solution, s.prefix())
}

func (s *Solver) solveSequential(ctx context.Context, seed uint64, prefix string, chunk uint64) (uint64, error) {
	h := s.newDigest()
	for sol := uint64(1); ; sol++ {
		if sol%chunk == 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			default:
			}
		}
		if s.attempt(h, seed, sol, prefix) {
			return sol, nil
		}
	}
}

// solveParallel fans the search out over Workers goroutines. Chunks of the
// solution space are claimed in ascending order; once a hit lands, workers
// stop claiming chunks past it but finish the chunks below it, so the
// minimum over all hits is the global first hit.
func (s *Solver) solveParallel(ctx context.Context, seed uint64, prefix string, chunk uint64) (uint64, error) {
	var (
		nextChunk atomic.Uint64
		best      atomic.Uint64
	)
	best.Store(math.MaxUint64)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.Workers; i++ {
		g.Go(func() error {
			h := s.newDigest()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				start := nextChunk.Add(1)*chunk - chunk + 1
				if start > best.Load() {
					return nil
				}
				for sol := start; sol < start+chunk; sol++ {
					if s.attempt(h, seed, sol, prefix) {
						storeMin(&best, sol)
						break
					}
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return best.Load(), nil
}

// attempt tests a single candidate, reusing h between calls.
func (s *Solver) attempt(h hash.Hash, seed, sol uint64, prefix string) bool {
	var buf [20]byte
	h.Reset()
	h.Write(strconv.AppendUint(buf[:0], seed+sol, 10))
	sum := h.Sum(buf[:0:20])
	want := (len(prefix) + 1) / 2
	if want > len(sum) {
		return false
	}
	encoded := hex.EncodeToString(sum[:want])
	return encoded[:len(prefix)] == prefix
}

func (s *Solver) prefix() string {
	if s.Prefix == "" {
		return DefaultPrefix
	}
	return s.Prefix
}

func (s *Solver) chunkSize() uint64 {
	if s.ChunkSize == 0 {
		return defaultChunkSize
	}
	return s.ChunkSize
}

func (s *Solver) newDigest() hash.Hash {
	if s.Digest == nil {
		return md5.New()
	}
	return s.Digest()
}

func storeMin(a *atomic.Uint64, v uint64) {
	for {
		cur := a.Load()
		if v >= cur || a.CompareAndSwap(cur, v) {
			return
		}
	}
}
