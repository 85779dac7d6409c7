package parser

import (
	"runtime"
	"sync"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParserPool recycles tree-sitter parser instances for a single grammar.
//
//	sp := pool.Get()
//	defer pool.Put(sp)
//	tree := sp.Parse(source, nil)
//
// At most maxIdle parsers are kept; extra parsers returned with Put are
// closed so their C allocations are released. Safe for use by multiple
// goroutines.
type ParserPool struct {
	lang *sitter.Language
	idle chan *sitter.Parser

	leases   map[*sitter.Parser]time.Time
	leasesMu sync.Mutex
}

func NewParserPool(lang *sitter.Language) *ParserPool {
	return newParserPool(lang, runtime.GOMAXPROCS(0))
}

func newParserPool(lang *sitter.Language, maxIdle int) *ParserPool {
	if maxIdle < 1 {
		maxIdle = 1
	}
	return &ParserPool{
		lang:   lang,
		idle:   make(chan *sitter.Parser, maxIdle),
		leases: make(map[*sitter.Parser]time.Time),
	}
}

// Get returns a parser configured for the pool's grammar.
func (p *ParserPool) Get() *sitter.Parser {
	var sp *sitter.Parser
	select {
	case sp = <-p.idle:
	default:
		sp = sitter.NewParser()
	}
	_ = sp.SetLanguage(p.lang)

	p.leasesMu.Lock()
	p.leases[sp] = time.Now()
	p.leasesMu.Unlock()

	return sp
}

// Put resets sp and returns it to the pool. Callers must not use sp afterwards.
func (p *ParserPool) Put(sp *sitter.Parser) {
	if sp == nil {
		return
	}

	p.leasesMu.Lock()
	delete(p.leases, sp)
	p.leasesMu.Unlock()

	sp.Reset()
	select {
	case p.idle <- sp:
	default:
		sp.Close()
	}
}

// Parse runs one parse on a pooled parser. The caller owns the returned tree.
func (p *ParserPool) Parse(source []byte) *sitter.Tree {
	sp := p.Get()
	defer p.Put(sp)
	return sp.Parse(source, nil)
}

// Stats returns the number of parsers currently leased.
func (p *ParserPool) Stats() int {
	p.leasesMu.Lock()
	defer p.leasesMu.Unlock()
	return len(p.leases)
}

// idleCount returns the number of parsers waiting for reuse.
func (p *ParserPool) idleCount() int {
	return len(p.idle)
}
