package pcrex_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/coregx/pcrex"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := pcrex.Compile(`\d+`)
	if err != nil {
		panic(err)
	}
	defer re.Close()

	fmt.Println(re.IsMatch([]byte("hello 123")))
	// Output: true
}

// ExampleMustCompile demonstrates panic-on-error compilation.
func ExampleMustCompile() {
	re := pcrex.MustCompile(`hello`)
	defer re.Close()

	fmt.Println(re.MatchString("hello world"))
	// Output: true
}

// ExampleRegex_All demonstrates iterating over matches with lookaround.
func ExampleRegex_All() {
	re := pcrex.MustCompile(`(?<=\d{4})[^\d\s]{3,11}(?=\S)`)
	defer re.Close()

	subject := []byte(`a;jhgoqoghqoj0329 u0tyu10hg0h9Y0Y9827342482y(Y0y(G)_)lajf;lqjfgqhgpqjopjqa=)*(^!@#$%^&*())9999999`)
	for m, err := range re.All(subject) {
		if err != nil {
			panic(err)
		}
		fmt.Println(m.Start(), m.End(), m.String())
	}
	// Output: 43 46 y(Y
}

// ExampleRegex_FindIter demonstrates the cursor form and empty matches.
func ExampleRegex_FindIter() {
	re := pcrex.MustCompile(`a*`)
	defer re.Close()

	it := re.FindIter([]byte("ab a"))
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		fmt.Printf("%d\n", m)
	}
	if err := it.Err(); err != nil {
		panic(err)
	}
	// Output:
	// [0,1)
	// [2,2)
	// [3,4)
}

// ExampleRegex_FindAllString demonstrates collecting matched text.
func ExampleRegex_FindAllString() {
	re := pcrex.MustCompile(`\w+`)
	defer re.Close()

	words, _ := re.FindAllString("one two  three", -1)
	fmt.Println(words)
	// Output: [one two three]
}

// ExampleRegex_ReplaceAllFunc demonstrates functional replacement.
func ExampleRegex_ReplaceAllFunc() {
	re := pcrex.MustCompile(`[a-z]+`)
	defer re.Close()

	out, _ := re.ReplaceAllFunc([]byte("go 1 pcre 2"), bytes.ToUpper)
	fmt.Println(string(out))
	// Output: GO 1 PCRE 2
}

// ExampleBuild demonstrates compile options.
func ExampleBuild() {
	re, err := pcrex.Build(`^hello$`, pcrex.DefaultOptions|pcrex.Caseless|pcrex.Multiline)
	if err != nil {
		panic(err)
	}
	defer re.Close()

	n, _ := re.Count([]byte("HELLO\nworld\nHello"), -1)
	fmt.Println(n)
	// Output: 2
}

// ExampleBuildWithConfig demonstrates choosing an engine.
func ExampleBuildWithConfig() {
	lib, err := pcrex.LibraryByName("linear")
	if err != nil {
		panic(err)
	}
	cfg := pcrex.DefaultConfig()
	cfg.Library = lib

	re, err := pcrex.BuildWithConfig(`(a|b)+c`, cfg)
	if err != nil {
		panic(err)
	}
	defer re.Close()

	m, _ := re.Find([]byte("xxababcx"))
	fmt.Println(re.Library().Name(), m.Start(), m.End())
	// Output: linear 2 7
}

// ExampleCompileError demonstrates inspecting a compile failure.
func ExampleCompileError() {
	_, err := pcrex.Compile(`a(b`)

	var cerr *pcrex.CompileError
	if errors.As(err, &cerr) {
		fmt.Println(cerr.Offset, cerr.Message)
	}
	// Output: 3 missing closing parenthesis
}

// ExamplePool demonstrates per-goroutine instances.
func ExamplePool() {
	pool, err := pcrex.NewPool(`\d+`, pcrex.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	re, err := pool.Get()
	if err != nil {
		panic(err)
	}
	defer pool.Put(re)

	fmt.Println(re.MatchString("abc 42"))
	// Output: true
}
