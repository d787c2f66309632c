package tui

type View int

const (
	ViewLoading View = iota
	ViewBrowse
	ViewTopics
	ViewDetail
	ViewFatal
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewBrowse:
		return "browse"
	case ViewTopics:
		return "topics"
	case ViewDetail:
		return "detail"
	case ViewFatal:
		return "fatal"
	default:
		return "unknown"
	}
}
