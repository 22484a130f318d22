package archon

// Kind classifies a non-fatal item failure. Failures never abort the run;
// they are aggregated into the Summary and reflected in the exit status.
type Kind int

const (
	KindConfig Kind = iota + 1
	KindWalk
	KindCopy
	KindConvert
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindWalk:
		return "walk"
	case KindCopy:
		return "copy"
	case KindConvert:
		return "convert"
	case KindDelete:
		return "delete"
	}
	return "unknown"
}

// Failure records a single failed work item.
type Failure struct {
	Kind Kind
	Path string
	Err  error
}
