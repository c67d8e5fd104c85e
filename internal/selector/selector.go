// Package selector picks a single file out of a directory using one of three
// strategies: the most recently modified file, a uniformly random file, or the
// Nth file in sorted path order.
//
// Every call lists the directory afresh; nothing is cached between calls.
package selector

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bagtoad/pathpick/internal/logger"
	"github.com/bagtoad/pathpick/internal/scanner"
)

// MaxIndex is the largest index advertised to hosts. Indexed accepts any
// non-negative int; this only bounds UI widgets.
const MaxIndex = 99999999

// Strategy names a selection rule.
type Strategy int

const (
	StrategyLastModified Strategy = iota
	StrategyRandom
	StrategyIndexed
)

func (s Strategy) String() string {
	switch s {
	case StrategyLastModified:
		return "latest"
	case StrategyRandom:
		return "random"
	case StrategyIndexed:
		return "index"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a strategy name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latest", "last-modified", "lastmodified":
		return StrategyLastModified, nil
	case "random":
		return StrategyRandom, nil
	case "index", "indexed":
		return StrategyIndexed, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// Request holds the inputs of one selection. Index is only used by
// StrategyIndexed.
type Request struct {
	Directory  string
	Extensions string
	Index      int
}

// Listing is the validated candidate list for a directory.
type Listing struct {
	// Dir is the expanded, absolute directory.
	Dir          string
	Paths        []string
	SkippedCount int
}

// Selector runs selections. The zero value is not usable; call New.
// A Selector is safe for concurrent use.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
	log *logger.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand sets the random source used by Random. Tests pass a seeded source
// to get reproducible picks.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.rng = r }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(s *Selector) { s.log = l }
}

// New creates a Selector. Without WithRand, the random source is a PCG
// generator seeded from the runtime's entropy, so picks differ between runs.
func New(opts ...Option) *Selector {
	s := &Selector{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Select dispatches req to the given strategy.
func (s *Selector) Select(strategy Strategy, req Request) (string, error) {
	switch strategy {
	case StrategyLastModified:
		return s.LastModified(req.Directory, req.Extensions)
	case StrategyRandom:
		return s.Random(req.Directory, req.Extensions)
	case StrategyIndexed:
		return s.Indexed(req.Directory, req.Extensions, req.Index)
	}
	return "", &Error{Kind: KindUnexpected, Path: req.Directory, Err: fmt.Errorf("unknown strategy %v", strategy)}
}

// LastModified returns the matching file with the newest modification time.
// On a tie the first file in listing order wins.
func (s *Selector) LastModified(dir, exts string) (string, error) {
	l, err := s.list(dir, exts)
	if err != nil {
		return "", err
	}

	var latest string
	var latestTime time.Time
	for i, p := range l.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return "", s.unexpected(l.Dir, err)
		}
		if i == 0 || info.ModTime().After(latestTime) {
			latest = p
			latestTime = info.ModTime()
		}
	}
	return latest, nil
}

// Random returns a matching file chosen uniformly at random.
func (s *Selector) Random(dir, exts string) (string, error) {
	l, err := s.list(dir, exts)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	i := s.rng.IntN(len(l.Paths))
	s.mu.Unlock()

	return l.Paths[i], nil
}

// Indexed returns the matching file at position index after sorting paths
// in ascending lexicographic order.
func (s *Selector) Indexed(dir, exts string, index int) (string, error) {
	l, err := s.Candidates(dir, exts)
	if err != nil {
		return "", err
	}

	if index < 0 || index >= len(l.Paths) {
		return "", &Error{Kind: KindIndexOutOfRange, Path: l.Dir, Index: index, Count: len(l.Paths)}
	}
	return l.Paths[index], nil
}

// Candidates returns the sorted candidate list that Indexed selects from.
func (s *Selector) Candidates(dir, exts string) (*Listing, error) {
	l, err := s.list(dir, exts)
	if err != nil {
		return nil, err
	}
	sort.Strings(l.Paths)
	return l, nil
}

// list validates dir and returns its matching files in enumeration order.
// An empty result is reported as KindNoMatches.
func (s *Selector) list(dir, exts string) (*Listing, error) {
	d, err := resolveDir(dir)
	if err != nil {
		return nil, s.unexpected(dir, err)
	}

	info, err := os.Stat(d)
	switch {
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR):
		return nil, &Error{Kind: KindNotFound, Path: d, Err: err}
	case err != nil:
		return nil, s.unexpected(d, err)
	case !info.IsDir():
		return nil, &Error{Kind: KindNotDirectory, Path: d}
	}

	res, err := scanner.Scan(d, scanner.ParseExtensions(exts))
	if err != nil {
		return nil, s.unexpected(d, err)
	}
	s.log.Debugf("scanned %s: %d candidates, %d filtered out", d, len(res.Paths), res.SkippedCount)

	if len(res.Paths) == 0 {
		return nil, &Error{Kind: KindNoMatches, Path: d}
	}

	return &Listing{Dir: d, Paths: res.Paths, SkippedCount: res.SkippedCount}, nil
}

func (s *Selector) unexpected(dir string, err error) error {
	s.log.Warnf("selection in %s failed: %v", dir, err)
	return &Error{Kind: KindUnexpected, Path: dir, Err: err}
}

func resolveDir(dir string) (string, error) {
	d, err := scanner.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	return filepath.Abs(d)
}
