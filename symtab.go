package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/btree"
)

//
// The variable store.  Names are case-sensitive and there is exactly
// one integer per name.  We keep the variables in a B-tree ordered by
// name, so that the end-of-run variable dump comes out sorted
//

const symtabDegree = 8

type symtabNode struct {
	name  string
	value int
}

type symtab struct {
	tree     *btree.BTreeG[symtabNode]
	log      *slog.Logger
	traceAll bool
	traced   map[string]bool
}

func lessSymtabNode(a, b symtabNode) bool {

	return a.name < b.name
}

func newSymtab(log *slog.Logger) *symtab {

	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &symtab{
		tree:   btree.NewG(symtabDegree, lessSymtabNode),
		log:    log,
		traced: make(map[string]bool),
	}
}

//
// Insert or overwrite.  No range checking beyond the host int
//

func (st *symtab) set(name string, value int) {

	old, existed := st.tree.ReplaceOrInsert(symtabNode{name: name, value: value})

	st.traceVar(name, old.value, existed, value)
}

func (st *symtab) get(name string) (int, error) {

	sym, ok := st.tree.Get(symtabNode{name: name})
	if !ok {
		return 0, newError(EUNDEFINEDVARIABLE, name)
	}

	return sym.value, nil
}

func (st *symtab) len() int {

	return st.tree.Len()
}

//
// Walk the store in name order
//

func (st *symtab) each(fn func(name string, value int)) {

	st.tree.Ascend(func(sym symtabNode) bool {
		fn(sym.name, sym.value)
		return true
	})
}

//
// Trace one more variable, leaving the global setting alone
//

func (st *symtab) traceName(name string) {

	st.traced[name] = true
}

func (st *symtab) traceVar(name string, oval int, existed bool, nval int) {

	if !st.traceAll && !st.traced[name] {
		return
	}

	if existed {
		st.log.Log(context.Background(), levelTrace, "variable changed",
			"name", name, "old", oval, "new", nval)
	} else {
		st.log.Log(context.Background(), levelTrace, "variable created",
			"name", name, "new", nval)
	}
}
