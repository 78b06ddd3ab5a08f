package resolve

import (
	"context"
	"fmt"

	"github.com/declget/declget/internal/installer"
	"github.com/declget/declget/internal/registry"
)

// fakeClient serves canned search and version responses.
type fakeClient struct {
	searchResults []registry.SourceCandidate
	searchErr     error
	versions      []registry.VersionInfo
	versionsErr   error

	searchCalls   []registry.SearchQuery
	versionsCalls []string // "source/name@constraint"
}

func (c *fakeClient) Search(_ context.Context, query registry.SearchQuery) ([]registry.SourceCandidate, error) {
	c.searchCalls = append(c.searchCalls, query)
	return c.searchResults, c.searchErr
}

func (c *fakeClient) Versions(_ context.Context, source, name, constraint string) ([]registry.VersionInfo, error) {
	c.versionsCalls = append(c.versionsCalls, fmt.Sprintf("%s/%s@%s", source, name, constraint))
	if c.versionsErr != nil {
		return nil, c.versionsErr
	}
	return c.versions, nil
}

// fakeInstaller records install calls and returns a canned result.
type fakeInstaller struct {
	result *installer.Result
	err    error

	installCalls    []installer.Options
	dependencyCalls []struct {
		Location string
		Opts     installer.Options
	}
}

func (f *fakeInstaller) Install(_ context.Context, opts installer.Options) (*installer.Result, error) {
	f.installCalls = append(f.installCalls, opts)
	return f.result, f.err
}

func (f *fakeInstaller) InstallDependency(_ context.Context, loc string, opts installer.Options) (*installer.Result, error) {
	f.dependencyCalls = append(f.dependencyCalls, struct {
		Location string
		Opts     installer.Options
	}{loc, opts})
	return f.result, f.err
}

// scriptedPrompter replays scripted answers and records the questions asked.
type scriptedPrompter struct {
	confirmAnswers []bool
	inputAnswers   []string
	selectAnswers  []int

	confirms []string
	inputs   []string
	selects  []struct {
		Question string
		Choices  []string
	}
}

func (p *scriptedPrompter) Confirm(question string, def bool) (bool, error) {
	p.confirms = append(p.confirms, question)
	if len(p.confirmAnswers) == 0 {
		return def, nil
	}
	answer := p.confirmAnswers[0]
	p.confirmAnswers = p.confirmAnswers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Input(question, def string) (string, error) {
	p.inputs = append(p.inputs, question)
	if len(p.inputAnswers) == 0 {
		return def, nil
	}
	answer := p.inputAnswers[0]
	p.inputAnswers = p.inputAnswers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Select(question string, choices []string) (int, error) {
	p.selects = append(p.selects, struct {
		Question string
		Choices  []string
	}{question, choices})
	if len(p.selectAnswers) == 0 {
		return 0, nil
	}
	answer := p.selectAnswers[0]
	p.selectAnswers = p.selectAnswers[1:]
	return answer, nil
}

func emptyResult() *installer.Result {
	return &installer.Result{Tree: &installer.Tree{Name: "root"}}
}
