package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"importtree/internal/core/errors"
	"importtree/internal/engine/graph"

	"github.com/gobwas/glob"
)

const pageExtension = ".astro"

// discoverPages lists page files under pagesRoot in lexical walk order.
// Hidden entries and directories matching an exclude glob are skipped.
func discoverPages(pagesRoot string, excludeDirs []glob.Glob) ([]graph.PageEntry, error) {
	info, err := os.Stat(pagesRoot)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "pages directory not found"), errors.CtxPath, pagesRoot)
	}
	if !info.IsDir() {
		return nil, errors.AddContext(errors.New(errors.CodeNotFound, "pages path is not a directory"), errors.CtxPath, pagesRoot)
	}

	var entries []graph.PageEntry
	err = filepath.WalkDir(pagesRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == pagesRoot {
			return nil
		}

		base := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}
			for _, g := range excludeDirs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if strings.HasPrefix(base, ".") || filepath.Ext(base) != pageExtension {
			return nil
		}

		rel, err := filepath.Rel(pagesRoot, path)
		if err != nil {
			return err
		}
		entries = append(entries, graph.PageEntry{
			URLPath:  graph.URLPath(rel),
			FilePath: path,
		})
		return nil
	})
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("page discovery failed under %s", pagesRoot)), errors.CtxPath, pagesRoot)
	}
	return entries, nil
}
