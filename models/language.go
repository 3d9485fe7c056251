package models

// Language is the label attached to a fenced code block.
// The empty Language means no language could be resolved.
type Language string

const (
	LanguageNone   Language = ""
	LanguagePython Language = "python"
	LanguageRust   Language = "rust"
	LanguageBash   Language = "bash"
	LanguageText   Language = "text"
)

// String returns the label, or "(none)" for LanguageNone.
func (l Language) String() string {
	if l == LanguageNone {
		return "(none)"
	}
	return string(l)
}
