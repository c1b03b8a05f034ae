package engine

// Feed is a bounded list of short-lived text lines.
type Feed struct {
	max   int
	ttl   int
	lines []feedLine
}

type feedLine struct {
	text string
	left int
}

// NewFeed keeps at most max lines, each for ttl ticks. A ttl of zero or
// less keeps lines until they are pushed out.
func NewFeed(max, ttl int) *Feed {
	if max < 1 {
		max = 1
	}
	return &Feed{max: max, ttl: ttl}
}

func (f *Feed) Push(text string) {
	f.lines = append(f.lines, feedLine{text: text, left: f.ttl})
	if over := len(f.lines) - f.max; over > 0 {
		f.lines = f.lines[over:]
	}
}

// Step ages every line by one tick and drops the expired ones.
func (f *Feed) Step() {
	if f.ttl <= 0 {
		return
	}
	kept := f.lines[:0]
	for _, l := range f.lines {
		l.left--
		if l.left > 0 {
			kept = append(kept, l)
		}
	}
	f.lines = kept
}

// Lines returns the visible lines, oldest first.
func (f *Feed) Lines() []string {
	out := make([]string, len(f.lines))
	for i, l := range f.lines {
		out[i] = l.text
	}
	return out
}
