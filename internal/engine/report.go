package engine

// Message is one problem reported for a file.
type Message struct {
	RuleID    string `json:"ruleId" yaml:"ruleId"`
	Severity  int    `json:"severity" yaml:"severity"`
	Message   string `json:"message" yaml:"message"`
	Line      int    `json:"line" yaml:"line"`
	Column    int    `json:"column" yaml:"column"`
	EndLine   int    `json:"endLine,omitempty" yaml:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty" yaml:"endColumn,omitempty"`
	Fatal     bool   `json:"fatal,omitempty" yaml:"fatal,omitempty"`
}

// Result holds the problems found in one file.
type Result struct {
	FilePath            string    `json:"filePath" yaml:"filePath"`
	Messages            []Message `json:"messages" yaml:"messages"`
	ErrorCount          int       `json:"errorCount" yaml:"errorCount"`
	WarningCount        int       `json:"warningCount" yaml:"warningCount"`
	FixableErrorCount   int       `json:"fixableErrorCount" yaml:"fixableErrorCount"`
	FixableWarningCount int       `json:"fixableWarningCount" yaml:"fixableWarningCount"`
	Output              string    `json:"output,omitempty" yaml:"output,omitempty"`
}

// Report is the outcome of linting a set of files.
type Report struct {
	Results             []Result `json:"results" yaml:"results"`
	ErrorCount          int      `json:"errorCount" yaml:"errorCount"`
	WarningCount        int      `json:"warningCount" yaml:"warningCount"`
	FixableErrorCount   int      `json:"fixableErrorCount" yaml:"fixableErrorCount"`
	FixableWarningCount int      `json:"fixableWarningCount" yaml:"fixableWarningCount"`
}

// NewReport wraps results and totals their counts.
func NewReport(results []Result) *Report {
	r := &Report{Results: []Result{}}
	for _, res := range results {
		r.add(res)
	}
	return r
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	r.ErrorCount += res.ErrorCount
	r.WarningCount += res.WarningCount
	r.FixableErrorCount += res.FixableErrorCount
	r.FixableWarningCount += res.FixableWarningCount
}

// MergeReports concatenates results in argument order and sums the counts.
// Nil reports are skipped.
func MergeReports(reports ...*Report) *Report {
	out := NewReport(nil)
	for _, r := range reports {
		if r == nil {
			continue
		}
		for _, res := range r.Results {
			out.add(res)
		}
	}
	return out
}

// OK reports whether no errors were found. Warnings do not fail a run.
func (r *Report) OK() bool {
	return r == nil || r.ErrorCount == 0
}
