package a

func use(x int) int {
	return compute{}.Extra(x) + label{}.Double(x)
}
