package rex_test

import (
	"fmt"

	"github.com/coregx/rex"
)

func Example() {
	re, err := rex.Compile("ab*c")
	if err != nil {
		panic(err)
	}

	matches, err := re.MatchString("ac abc abbbc")
	if err != nil {
		panic(err)
	}

	for _, m := range matches {
		fmt.Printf("%q [%d, %d]\n", m.Value(), m.RangeBegin(), m.RangeEnd())
	}
	// Output:
	// "ac" [0, 1]
	// "abc" [3, 5]
	// "abbbc" [7, 11]
}

func ExampleRegex_IsMatch() {
	re := rex.MustCompile("^[0-9]+$")

	ok, _ := re.IsMatch([]byte("12345"))
	fmt.Println(ok)

	ok, _ = re.IsMatch([]byte("12a45"))
	fmt.Println(ok)
	// Output:
	// true
	// false
}

func ExampleCompileWithConfig() {
	config := rex.DefaultConfig()
	config.MaxDFAStates = 50000

	re, err := rex.CompileWithConfig("(a|b)*abb", config)
	if err != nil {
		panic(err)
	}

	matches, _ := re.MatchString("xxababbyy")
	fmt.Println(matches[0].Value())
	// Output:
	// ababb
}
