/*
Package dsl provides a Go DSL for programmatically constructing automata.

It allows developers to define automata with a fluent builder instead of
relying on external YAML or JSON files. This is particularly useful for tests,
generated automata and leveraging IDE autocompletion.

Example usage:

	b := dsl.New("ends-with-01")

	b.Add("p").On("0", "p", "q").On("1", "p")
	b.Add("q").On("1", "r")
	b.Add("r").Final().Epsilon("p")

	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(a.Accepts("1101")) // true

Symbols used in On are added to the alphabet in the order they first appear.
Sigma declares symbols up front, which fixes the alphabet order.
*/
package dsl
