package trie

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/savsgio/gotils/bytes"
	"github.com/valyala/fasthttp"
)

func mustParse(t *testing.T, method, template string) Path {
	t.Helper()

	path, err := Parse(method, template)
	if err != nil {
		t.Fatalf("Parse('%s') error == %v", template, err)
	}

	return path
}

func testLookup(t *testing.T, tree *Tree[uint64], method, path string, want uint64, wantParams Params) {
	t.Helper()

	match, err := tree.Lookup(method, path)
	if err != nil {
		t.Fatalf("Lookup('%s %s') error == %v", method, path, err)
	}

	if match.Value != want {
		t.Errorf("Lookup('%s %s') value == %d, want %d", method, path, match.Value, want)
	}

	if wantParams == nil {
		wantParams = Params{}
	}

	if len(match.Params) != len(wantParams) {
		t.Errorf("Lookup('%s %s') params == %v, want %v", method, path, match.Params, wantParams)
		return
	}

	for name, value := range wantParams {
		if match.Params[name] != value {
			t.Errorf("Lookup('%s %s') param %s == %s, want %s", method, path, name, match.Params[name], value)
		}
	}
}

func Test_Tree(t *testing.T) {
	rootItem := rand.Uint64()
	postRootItem := rand.Uint64()
	paramItem := rand.Uint64()
	paramStaticItem := rand.Uint64()
	wildcardItem := rand.Uint64()
	paramOverlapStaticItem := rand.Uint64()
	wildcardOverlapStaticItem := rand.Uint64()

	tree := New[uint64]()
	get := fasthttp.MethodGet

	type registration struct {
		method   string
		template string
		item     uint64
	}

	for _, reg := range []registration{
		{method: get, template: "/", item: rootItem},
		{method: fasthttp.MethodPost, template: "/", item: postRootItem},
		{method: get, template: "/param/:item", item: paramItem},
		{method: get, template: "/param", item: paramStaticItem},
		{method: get, template: "/wildcard/*wildcard", item: wildcardItem},
		{method: get, template: "/param/overlap", item: paramOverlapStaticItem},
		{method: get, template: "/wildcard/overlap", item: wildcardOverlapStaticItem},
	} {
		if err := tree.Add(mustParse(t, reg.method, reg.template), reg.item); err != nil {
			t.Fatalf("Add('%s %s') error == %v", reg.method, reg.template, err)
		}
	}

	testLookup(t, tree, get, "/", rootItem, nil)
	testLookup(t, tree, fasthttp.MethodPost, "/", postRootItem, nil)
	testLookup(t, tree, get, "/param", paramStaticItem, nil)
	testLookup(t, tree, get, "/param/asdf", paramItem, Params{"item": "asdf"})
	testLookup(t, tree, get, "/param/overlap", paramOverlapStaticItem, nil)
	testLookup(t, tree, get, "/wildcard/asdf", wildcardItem, Params{"wildcard": "asdf"})
	testLookup(t, tree, get, "/wildcard/foo/bar", wildcardItem, Params{"wildcard": "foo/bar"})
	testLookup(t, tree, get, "/wildcard/a/b/c", wildcardItem, Params{"wildcard": "a/b/c"})
	testLookup(t, tree, get, "/wildcard/overlap", wildcardOverlapStaticItem, nil)

	if _, err := tree.Lookup(get, "/asdf"); !errors.Is(err, &PathNotFoundError{}) {
		t.Errorf("Lookup('/asdf') error == %v, want PathNotFoundError", err)
	}

	if _, err := tree.Lookup(get, "/param/asdf/zxcv"); !errors.Is(err, &PathNotFoundError{}) {
		t.Errorf("Lookup('/param/asdf/zxcv') error == %v, want PathNotFoundError", err)
	}
}

func Test_Tree_MethodNotFound(t *testing.T) {
	item := rand.Uint64()

	tree := New[uint64]()

	if err := tree.Add(mustParse(t, fasthttp.MethodGet, "/"), item); err != nil {
		t.Fatalf("Add error == %v", err)
	}

	if _, err := tree.Lookup(fasthttp.MethodGet, "/"); err != nil {
		t.Errorf("Lookup(GET '/') error == %v", err)
	}

	_, err := tree.Lookup(fasthttp.MethodPost, "/")
	if !errors.Is(err, &MethodNotFoundError{}) {
		t.Errorf("Lookup(POST '/') error == %v, want MethodNotFoundError", err)
	}

	// A wrong method on a known path must not look like an unknown path.
	if errors.Is(err, &PathNotFoundError{}) {
		t.Errorf("Lookup(POST '/') reported PathNotFoundError")
	}
}

func Test_Tree_WildMethod(t *testing.T) {
	exactItem := rand.Uint64()
	wildItem := rand.Uint64()

	tree := New[uint64]()

	if err := tree.Add(mustParse(t, fasthttp.MethodGet, "/"), exactItem); err != nil {
		t.Fatalf("Add error == %v", err)
	}
	if err := tree.Add(mustParse(t, MethodWild, "/"), wildItem); err != nil {
		t.Fatalf("Add error == %v", err)
	}

	testLookup(t, tree, fasthttp.MethodGet, "/", exactItem, nil)
	testLookup(t, tree, fasthttp.MethodPost, "/", wildItem, nil)
	testLookup(t, tree, fasthttp.MethodDelete, "/", wildItem, nil)
}

func Test_Tree_AlreadyRegistered(t *testing.T) {
	staticItem := rand.Uint64()
	paramItem := rand.Uint64()
	wildcardItem := rand.Uint64()

	tree := New[uint64]()
	get := fasthttp.MethodGet

	for _, reg := range []struct {
		template string
		item     uint64
	}{
		{template: "/static", item: staticItem},
		{template: "/parameter/:item", item: paramItem},
		{template: "/wildcard/*wildcard", item: wildcardItem},
	} {
		if err := tree.Add(mustParse(t, get, reg.template), reg.item); err != nil {
			t.Fatalf("Add('%s') error == %v", reg.template, err)
		}
	}

	// Duplicate method at a terminal node.
	err := tree.Add(mustParse(t, get, "/static"), rand.Uint64())
	if !errors.Is(err, &AlreadyRegisteredError{}) {
		t.Errorf("Add('/static') error == %v, want AlreadyRegisteredError", err)
	}
	testLookup(t, tree, get, "/static", staticItem, nil)

	// Parameter next to an existing wildcard.
	err = tree.Add(mustParse(t, get, "/wildcard/:item"), rand.Uint64())
	if !errors.Is(err, &AlreadyRegisteredError{}) {
		t.Errorf("Add('/wildcard/:item') error == %v, want AlreadyRegisteredError", err)
	}
	testLookup(t, tree, get, "/wildcard/foo", wildcardItem, Params{"wildcard": "foo"})

	// Wildcard next to an existing parameter.
	err = tree.Add(mustParse(t, get, "/parameter/*wildcard"), rand.Uint64())
	if !errors.Is(err, &AlreadyRegisteredError{}) {
		t.Errorf("Add('/parameter/*wildcard') error == %v, want AlreadyRegisteredError", err)
	}
	testLookup(t, tree, get, "/parameter/foo", paramItem, Params{"item": "foo"})

	// The identical dynamic segment under another method conflicts too: a
	// node holds at most one dynamic child, full stop.
	err = tree.Add(mustParse(t, fasthttp.MethodPost, "/parameter/:item"), rand.Uint64())
	if !errors.Is(err, &AlreadyRegisteredError{}) {
		t.Errorf("Add(POST '/parameter/:item') error == %v, want AlreadyRegisteredError", err)
	}
	testLookup(t, tree, get, "/parameter/foo", paramItem, Params{"item": "foo"})

	// Second parameter at the same position.
	err = tree.Add(mustParse(t, get, "/parameter/:other"), rand.Uint64())
	if !errors.Is(err, &AlreadyRegisteredError{}) {
		t.Errorf("Add('/parameter/:other') error == %v, want AlreadyRegisteredError", err)
	}

	var conflict *AlreadyRegisteredError
	if errors.As(err, &conflict) && conflict.Route != "parameter/:other" {
		t.Errorf("conflict route == %s, want parameter/:other", conflict.Route)
	}
}

func Test_Tree_ConflictLeavesTreeUntouched(t *testing.T) {
	tree := New[uint64]()
	get := fasthttp.MethodGet

	if err := tree.Add(mustParse(t, get, "/a/:p"), rand.Uint64()); err != nil {
		t.Fatalf("Add error == %v", err)
	}

	if err := tree.Add(mustParse(t, get, "/a/*w"), rand.Uint64()); err == nil {
		t.Fatal("Add('/a/*w') expected conflict")
	}

	// The failed insert must not have created any probeable node: a path
	// that was unknown before stays unknown, with the same error kind.
	if _, err := tree.Lookup(get, "/b"); !errors.Is(err, &PathNotFoundError{}) {
		t.Errorf("Lookup('/b') error == %v, want PathNotFoundError", err)
	}
}

func Test_Tree_Optimize(t *testing.T) {
	tree := New[string]()
	get := fasthttp.MethodGet

	handlers := make(map[string]string)

	for _, template := range []string{
		"/",
		"/users",
		"/users/:id",
		"/users/:id/posts",
		"/files/*filepath",
	} {
		handler := string(bytes.Rand(make([]byte, 10)))
		handlers[template] = handler

		if err := tree.Add(mustParse(t, get, template), handler); err != nil {
			t.Fatalf("Add('%s') error == %v", template, err)
		}
	}

	lookups := map[string]string{
		"/":               "/",
		"/users":          "/users",
		"/users/42":       "/users/:id",
		"/users/42/posts": "/users/:id/posts",
		"/files/a/b.txt":  "/files/*filepath",
	}

	check := func() {
		for path, template := range lookups {
			match, err := tree.Lookup(get, path)
			if err != nil {
				t.Fatalf("Lookup('%s') error == %v", path, err)
			}

			if match.Value != handlers[template] {
				t.Errorf("Lookup('%s') value == %s, want %s", path, match.Value, handlers[template])
			}
		}
	}

	check()
	tree.Optimize()
	check()
}

func Test_Tree_RootLookup(t *testing.T) {
	tree := New[uint64]()
	item := rand.Uint64()

	if err := tree.Add(mustParse(t, fasthttp.MethodGet, "//"), item); err != nil {
		t.Fatalf("Add error == %v", err)
	}

	// Separator-only request paths all resolve to the root node.
	for _, path := range []string{"/", "", "//", "///"} {
		testLookup(t, tree, fasthttp.MethodGet, path, item, nil)
	}
}

func Test_Tree_WildcardCollapsesSeparators(t *testing.T) {
	tree := New[uint64]()
	item := rand.Uint64()

	if err := tree.Add(mustParse(t, fasthttp.MethodGet, "/w/*rest"), item); err != nil {
		t.Fatalf("Add error == %v", err)
	}

	testLookup(t, tree, fasthttp.MethodGet, "/w//foo///bar", item, Params{"rest": "foo/bar"})
}

func Benchmark_LookupRoot(b *testing.B) {
	tree := New[uint64]()
	path, _ := Parse(fasthttp.MethodGet, "/")

	if err := tree.Add(path, 1); err != nil {
		b.Fatal(err)
	}
	tree.Optimize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Lookup(fasthttp.MethodGet, "/")
	}
}

func Benchmark_LookupDeepStatic(b *testing.B) {
	tree := New[uint64]()

	segments := make([]string, 16)
	for i := range segments {
		segments[i] = string(bytes.Rand(make([]byte, 8)))
	}
	template := "/" + strings.Join(segments, "/")

	path, err := Parse(fasthttp.MethodGet, template)
	if err != nil {
		b.Fatal(err)
	}
	if err := tree.Add(path, 1); err != nil {
		b.Fatal(err)
	}
	tree.Optimize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Lookup(fasthttp.MethodGet, template)
	}
}

func Benchmark_LookupDynamic(b *testing.B) {
	tree := New[uint64]()

	path, err := Parse(fasthttp.MethodGet, "/users/:id/posts/:post")
	if err != nil {
		b.Fatal(err)
	}
	if err := tree.Add(path, 1); err != nil {
		b.Fatal(err)
	}
	tree.Optimize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Lookup(fasthttp.MethodGet, "/users/42/posts/813")
	}
}

func Benchmark_LookupWildcard(b *testing.B) {
	tree := New[uint64]()

	path, err := Parse(fasthttp.MethodGet, "/*wildcard")
	if err != nil {
		b.Fatal(err)
	}
	if err := tree.Add(path, 1); err != nil {
		b.Fatal(err)
	}
	tree.Optimize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Lookup(fasthttp.MethodGet, "/a/b/c/d/e/f/g/h")
	}
}
