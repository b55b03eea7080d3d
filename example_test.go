package murasaki_test

import (
	"fmt"

	"github.com/agatan/yoin/ipadic"
)

func Example() {
	tok, err := ipadic.Load()
	if err != nil {
		fmt.Println(err)
		return
	}

	tokens, err := tok.Tokenize("すもものうち")
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, t := range tokens {
		fmt.Println(t.Surface)
	}
	// Output:
	// すもも
	// の
	// うち
}
