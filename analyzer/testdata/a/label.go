//go:build varies

package a

//varies:generate
func label(n int) int {
	//variant(double)
	n *= 2
	return n
}
