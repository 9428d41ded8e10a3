package runner

// Choice is how the caller selected a runner: either forced to a specific
// Kind or left to auto-detection. The zero value is AutoDetect.
type Choice struct {
	forced Kind
}

// Forced pins the runner to k. k is not validated here; an invalid forced
// runner is rejected when the choice is used.
func Forced(k Kind) Choice {
	return Choice{forced: k}
}

// AutoDetect defers the runner to the Detector.
func AutoDetect() Choice {
	return Choice{}
}

// IsForced reports whether the runner was chosen explicitly.
func (c Choice) IsForced() bool {
	return c.forced != ""
}

// Kind returns the forced kind, or "" for AutoDetect.
func (c Choice) Kind() Kind {
	return c.forced
}

// Resolve returns the forced kind, or asks d when auto-detecting.
func (c Choice) Resolve(d *Detector) Kind {
	if c.IsForced() {
		return c.forced
	}
	return d.Detect()
}

func (c Choice) String() string {
	if c.IsForced() {
		return "forced:" + string(c.forced)
	}
	return "auto"
}
