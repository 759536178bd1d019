package missing

//varies:generate
func shape(n int) int { // want "variants of shape.go have not been generated"
	//variant(square)
	n *= n
	return n
}
