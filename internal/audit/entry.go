package audit

import (
	"context"
	"time"
)

const (
	OperationPageAdd       = "page.add"
	OperationPageRemove    = "page.remove"
	OperationPageMove      = "page.move"
	OperationPageUpdate    = "page.update"
	OperationSectionAdd    = "section.add"
	OperationSectionRemove = "section.remove"
	OperationSectionMove   = "section.move"
	OperationSectionUpdate = "section.update"
	OperationGlobalUpdate  = "global.update"
	OperationSEOUpdate     = "seo.update"
	OperationThemeSet      = "theme.set"
	OperationDomainSet     = "domain.set"
	OperationPublish       = "publish"
	OperationRestore       = "restore"
	OperationUndo          = "undo"
	OperationExport        = "export"
	OperationDeploy        = "deploy"
)

// Entry is one recorded store operation. Target names the page, section or
// version the operation touched, or is empty for document-wide edits.
type Entry struct {
	ID        int64          `json:"id" yaml:"id"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Operation string         `json:"operation" yaml:"operation"`
	Target    string         `json:"target,omitempty" yaml:"target,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

type Filter struct {
	Operation string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

type QueryResult struct {
	Entries []Entry `json:"entries" yaml:"entries"`
	Total   int     `json:"total" yaml:"total"`
	Limit   int     `json:"limit" yaml:"limit"`
	Offset  int     `json:"offset" yaml:"offset"`
}

type Logger interface {
	Log(ctx context.Context, entry Entry) error
	Query(ctx context.Context, filter Filter) (QueryResult, error)
}
