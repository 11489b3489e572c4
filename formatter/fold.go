package formatter

// FoldIssueFormatter renders constant folding failures. On top of the
// general layout it names the failure kind below the message.
type FoldIssueFormatter struct{}

func (f *FoldIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}
{{- snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding}}
{{- underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{- category .Category .Padding}}
{{- note .Note}}
`
}
