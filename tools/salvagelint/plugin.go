package salvagelint

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"
)

func init() {
	register.Plugin("salvagelint", New)
}

// Plugin exposes Analyzer as a golangci-lint module plugin.
type Plugin struct{}

// New creates the plugin. salvagelint has no settings.
func New(settings any) (register.LinterPlugin, error) {
	return &Plugin{}, nil
}

func (*Plugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{Analyzer}, nil
}

func (*Plugin) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
