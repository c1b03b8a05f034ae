package animations

// Animation steps through frame indices First..Last, advancing Step indices
// every SpeedInTicks ticks. A looping animation wraps; a one-shot animation
// stops on Last and reports Finished after its final frame has been shown.
type Animation struct {
	First        int
	Last         int
	Step         int // how many indices do we move per frame
	SpeedInTicks int // how many ticks a frame stays on screen
	Loop         bool

	counter  int
	frame    int
	Looped   bool
	finished bool
}

func (a *Animation) Update() {
	if a.finished {
		return
	}
	a.counter--
	if a.counter > 0 {
		return
	}
	a.counter = a.SpeedInTicks
	a.frame += a.Step
	if a.frame > a.Last {
		a.Looped = true
		if a.Loop {
			a.frame = a.First
		} else {
			a.frame = a.Last
			a.finished = true
		}
	}
}

func (a *Animation) Frame() int {
	return a.frame
}

func (a *Animation) Finished() bool {
	return a.finished
}

func (a *Animation) Restart() {
	a.frame = a.First
	a.counter = a.SpeedInTicks
	a.Looped = false
	a.finished = false
}

// NewAnimation returns a one-shot animation over frames first..last.
func NewAnimation(first, last, step, speed int) *Animation {
	if step < 1 {
		step = 1
	}
	if speed < 1 {
		speed = 1
	}
	return &Animation{
		First:        first,
		Last:         last,
		Step:         step,
		SpeedInTicks: speed,
		counter:      speed,
		frame:        first,
	}
}
