package pipeline

import "github.com/nfu-tools/nfu-announcements/internal/extractor"

// Stage is where processing of a site ended.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageParse   Stage = "parse"
	StageExtract Stage = "extract"
	StageRender  Stage = "render"
	StageWrite   Stage = "write"
	StageDone    Stage = "done"
)

// Status summarizes a SiteResult.
type Status string

const (
	StatusWritten Status = "written"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// SiteResult describes what happened to one site during a run.
type SiteResult struct {
	Site   string
	URL    string
	Stage  Stage
	Reason extractor.Reason
	Items  int
	Path   string
	Err    error
}

// Status reports whether the site was written, produced nothing, or failed.
func (r SiteResult) Status() Status {
	switch {
	case r.Err != nil:
		return StatusFailed
	case r.Stage == StageDone:
		return StatusWritten
	default:
		return StatusEmpty
	}
}

// Summary aggregates a run.
type Summary struct {
	Results   []SiteResult
	Succeeded int
	Empty     int
	Failed    int
	Items     int
}

func (s *Summary) add(res SiteResult) {
	s.Results = append(s.Results, res)
	switch res.Status() {
	case StatusWritten:
		s.Succeeded++
		s.Items += res.Items
	case StatusEmpty:
		s.Empty++
	case StatusFailed:
		s.Failed++
	}
}
