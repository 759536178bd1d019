package bad

//varies:generate
func malformed() {
	/*variant(a b)*/ println() // want "malformed variant marker"
}

//varies:generate
func reserved() {
	println()
	/*variant(default)*/ println() // want "reserved variant name"
}

//varies:generate
func multiple() {
	/*variant(one)*/ /*variant(two)*/ println() // want "multiple variant markers"
}

//varies:generate
func nested(x int) {
	if x > 0 { /*variant(loud)*/ // want "variant marker not on a top-level statement"
		println("loud")
	}
}
