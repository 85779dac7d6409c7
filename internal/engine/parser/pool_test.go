package parser

import (
	"sync"
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

func tsxLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
}

func TestParserPool_GetPut(t *testing.T) {
	pool := NewParserPool(tsxLanguage())

	sp := pool.Get()
	if sp == nil {
		t.Fatal("expected non-nil parser from pool")
	}
	if pool.Stats() != 1 {
		t.Errorf("expected 1 leased parser, got %d", pool.Stats())
	}

	pool.Put(sp)
	if pool.Stats() != 0 {
		t.Errorf("expected 0 leased parsers after Put, got %d", pool.Stats())
	}
}

func TestParserPool_PutNil(t *testing.T) {
	pool := NewParserPool(tsxLanguage())
	pool.Put(nil)
}

func TestParserPool_ParsesValidTSX(t *testing.T) {
	pool := NewParserPool(tsxLanguage())

	tree := pool.Parse([]byte("import x from './x';\nconst el = <div>{x as string}</div>;\n"))
	if tree == nil {
		t.Fatal("expected non-nil parse tree")
	}
	defer tree.Close()

	if root := tree.RootNode(); root.HasError() {
		t.Fatal("expected error-free root node")
	}
}

func TestParserPool_ConcurrentAccess(t *testing.T) {
	pool := NewParserPool(tsxLanguage())

	const goroutines = 20
	const iters = 25

	var wg sync.WaitGroup
	wg.Add(goroutines)

	src := []byte("export function run(): void {}\n")
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iters; j++ {
				tree := pool.Parse(src)
				if tree == nil {
					t.Errorf("expected non-nil parse tree")
					continue
				}
				tree.Close()
			}
		}()
	}

	wg.Wait()
}

func TestParserPool_LanguageSetAfterReset(t *testing.T) {
	pool := NewParserPool(tsxLanguage())

	sp := pool.Get()
	sp.Reset()
	pool.Put(sp)

	tree := pool.Parse([]byte("const ok = 1;\n"))
	if tree == nil {
		t.Fatal("parser should still parse after an external Reset")
	}
	defer tree.Close()
}

func TestParserPool_IdleIsBounded(t *testing.T) {
	pool := newParserPool(tsxLanguage(), 2)

	leased := make([]*sitter.Parser, 0, 5)
	for i := 0; i < 5; i++ {
		leased = append(leased, pool.Get())
	}
	if pool.Stats() != 5 {
		t.Fatalf("expected 5 leased parsers, got %d", pool.Stats())
	}
	for _, sp := range leased {
		pool.Put(sp)
	}
	if pool.idleCount() != 2 {
		t.Errorf("expected 2 idle parsers, got %d", pool.idleCount())
	}

	reused := pool.Get()
	if reused != leased[0] && reused != leased[1] {
		t.Error("expected Get to reuse an idle parser")
	}
	if pool.idleCount() != 1 {
		t.Errorf("expected 1 idle parser after reuse, got %d", pool.idleCount())
	}
	pool.Put(reused)

	tree := pool.Parse([]byte("const ok = 1;\n"))
	if tree == nil {
		t.Fatal("expected reused parser to parse")
	}
	defer tree.Close()
}
