package common

func Min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func AbsDelta(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}
