package track

// Trigger is a notification candidate produced by a loud computation.
type Trigger struct {
	// Path is either a changed leaf path or an ancestor wildcard ("user.*").
	Path string
	// Value is the new value of the changed leaf.
	Value any
	// Wildcard is set for ancestor entries.
	Wildcard bool
}

// Matches reports whether a listener subscribed to the given path should be
// notified by this trigger.
func (t Trigger) Matches(subscription string) bool {
	return t.Path == subscription
}

// Paths returns trigger paths in order.
func Paths(triggers []Trigger) []string {
	out := make([]string, 0, len(triggers))
	for _, t := range triggers {
		out = append(out, t.Path)
	}

	return out
}

// Matching returns the triggers a subscription receives, in order.
func Matching(triggers []Trigger, subscription string) []Trigger {
	var out []Trigger

	for _, t := range triggers {
		if t.Matches(subscription) {
			out = append(out, t)
		}
	}

	return out
}
