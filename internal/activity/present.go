package activity

// Icon is the indicator category shown next to a thread entry.
type Icon string

const (
	IconMessage Icon = "message"
	IconImage   Icon = "image"
	IconAlert   Icon = "alert"
)

// Presentation holds the per-kind display metadata for a record.
type Presentation struct {
	Icon   Icon   `json:"icon"`
	Verb   string `json:"verb"`
	Target string `json:"target,omitempty"` // empty when nothing should be shown
}

// Present derives how a record is displayed in a thread.
func Present(r Record) Presentation {
	switch r.Kind {
	case KindPhoto:
		p := Presentation{Icon: IconImage, Verb: "commented on"}
		if r.Target != "" {
			p.Target = "Photo: " + r.Target
		}
		return p
	case KindChangesRequested:
		p := Presentation{Icon: IconAlert, Verb: "requested changes"}
		if r.Target != "" {
			p.Target = r.Target
		}
		return p
	default:
		return Presentation{Icon: IconMessage, Verb: "commented"}
	}
}
