package diff

type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeRemoved  ChangeType = "removed"
)

// Kind groups output files for display.
type Kind string

const (
	KindPage  Kind = "pages"
	KindStyle Kind = "styles"
	KindSEO   Kind = "seo"
	KindImage Kind = "images"
	KindOther Kind = "other"
)

var kindOrder = []Kind{KindPage, KindStyle, KindSEO, KindImage, KindOther}

type FileChange struct {
	Path       string     `json:"path" yaml:"path"`
	Kind       Kind       `json:"kind" yaml:"kind"`
	ChangeType ChangeType `json:"changeType" yaml:"changeType"`
	OldHash    string     `json:"oldHash,omitempty" yaml:"oldHash,omitempty"`
	NewHash    string     `json:"newHash,omitempty" yaml:"newHash,omitempty"`
	SizeDelta  int64      `json:"sizeDelta" yaml:"sizeDelta"`
}

type Summary struct {
	Added     int `json:"added" yaml:"added"`
	Modified  int `json:"modified" yaml:"modified"`
	Removed   int `json:"removed" yaml:"removed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

type Result struct {
	Changes []FileChange `json:"changes" yaml:"changes"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

func (r Result) HasChanges() bool {
	return r.Summary.Added+r.Summary.Modified+r.Summary.Removed > 0
}

// Report is a comparison between two named site states such as a version
// id and "draft".
type Report struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Result Result `json:"result" yaml:"result"`
}
