//go:build varies

package a

import "fmt"

//varies:generate
func compute(x int) int {
	y := x
	//variant(extra)
	y += 1
	//variant(hi)
	fmt.Println("hi")
	return y
}
