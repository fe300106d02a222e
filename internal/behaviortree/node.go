package behaviortree

// Sequence ticks children in order, failing on the first FAILURE and
// returning RUNNING on the first RUNNING. With Memory set, a tick that
// returns RUNNING resumes at that child next tick rather than
// re-ticking from the start.
type Sequence struct {
	Name     string
	Children []Behaviour
	Memory   bool

	runningAt int
}

// NewSequence constructs a Sequence over children.
func NewSequence(name string, memory bool, children ...Behaviour) *Sequence {
	return &Sequence{Name: name, Children: children, Memory: memory}
}

// Tick implements Behaviour.
func (s *Sequence) Tick() Status {
	start := 0
	if s.Memory {
		start = s.runningAt
	}
	for i := start; i < len(s.Children); i++ {
		switch status := s.Children[i].Tick(); status {
		case Failure:
			s.runningAt = 0
			return Failure
		case Running:
			s.runningAt = i
			return Running
		}
	}
	s.runningAt = 0
	return Success
}

// Selector ticks children in order, succeeding on the first SUCCESS and
// returning RUNNING on the first RUNNING. Fails only when every child
// fails.
type Selector struct {
	Name     string
	Children []Behaviour
	Memory   bool

	runningAt int
}

// NewSelector constructs a Selector over children.
func NewSelector(name string, memory bool, children ...Behaviour) *Selector {
	return &Selector{Name: name, Children: children, Memory: memory}
}

// Tick implements Behaviour.
func (s *Selector) Tick() Status {
	start := 0
	if s.Memory {
		start = s.runningAt
	}
	for i := start; i < len(s.Children); i++ {
		switch status := s.Children[i].Tick(); status {
		case Success:
			s.runningAt = 0
			return Success
		case Running:
			s.runningAt = i
			return Running
		}
	}
	s.runningAt = 0
	return Failure
}

// Inverter flips SUCCESS <-> FAILURE; RUNNING passes through unchanged.
type Inverter struct {
	Name  string
	Child Behaviour
}

// NewInverter constructs an Inverter wrapping child.
func NewInverter(name string, child Behaviour) *Inverter {
	return &Inverter{Name: name, Child: child}
}

// Tick implements Behaviour.
func (v *Inverter) Tick() Status {
	switch status := v.Child.Tick(); status {
	case Success:
		return Failure
	case Failure:
		return Success
	default:
		return status
	}
}

// Condition is a pure predicate leaf: SUCCESS when Predicate returns
// true, FAILURE otherwise. Must not mutate the blackboard.
type Condition struct {
	Name      string
	Predicate func() bool
}

// NewCondition constructs a Condition leaf.
func NewCondition(name string, predicate func() bool) *Condition {
	return &Condition{Name: name, Predicate: predicate}
}

// Tick implements Behaviour.
func (c *Condition) Tick() Status {
	if c.Predicate() {
		return Success
	}
	return Failure
}

// Action is a leaf that may mutate the blackboard (write a RobotCommand
// into cmd_map, update role_map, ...) and reports its own outcome.
type Action struct {
	Name string
	Run  func() Status
}

// NewAction constructs an Action leaf.
func NewAction(name string, run func() Status) *Action {
	return &Action{Name: name, Run: run}
}

// Tick implements Behaviour.
func (a *Action) Tick() Status {
	return a.Run()
}
