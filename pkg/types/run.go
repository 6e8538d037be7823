package types

// Run carries the results a module produces while it is invoked.
type Run struct {
	Data chan Result
}

func NewRun() Run {
	return Run{
		Data: make(chan Result),
	}
}
