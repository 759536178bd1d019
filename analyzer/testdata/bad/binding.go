package bad

//varies:generate
func binding() int {
	/*variant(extra)*/ x := 1 // want "variant marker .* on a binding is ignored"
	//variant(more)
	x++
	return x
}
