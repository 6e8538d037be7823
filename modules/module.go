package modules

import (
	"context"
	"strings"

	"github.com/praetorian-inc/m365/modules/options"
	"github.com/praetorian-inc/m365/pkg/session"
	"github.com/praetorian-inc/m365/pkg/types"
)

type Metadata struct {
	// Id is the leaf command name, e.g. "list".
	Id string
	// Path holds the parent commands below the platform, e.g.
	// ["navigation", "node"].
	Path        []string
	Description string
	Platform    types.Platform
	Authors     []string
	References  []string
}

// Name returns the full command name without the platform, e.g.
// "navigation node add".
func (m Metadata) Name() string {
	return strings.Join(append(append([]string{}, m.Path...), m.Id), " ")
}

// Category is the space separated parent path used in the registry hierarchy.
func (m Metadata) Category() string {
	return strings.Join(m.Path, " ")
}

// Command returns the full command line, e.g. "spo navigation node add".
func (m Metadata) Command() string {
	return string(m.Platform) + " " + m.Name()
}

type Module interface {
	Invoke(ctx context.Context) error
	GetOutputProviders() []types.OutputProvider
}

// Factory builds a module from validated options.
type Factory func(opts []*types.Option, sess *session.Session, run types.Run) (Module, error)

// Validator performs command-specific checks after the generic option
// validation. It must not do I/O.
type Validator func(opts []*types.Option) error

type BaseModule struct {
	Metadata
	Options         []*types.Option
	Session         *session.Session
	Run             types.Run
	OutputProviders []types.OutputProvider
}

func NewBaseModule(metadata Metadata, opts []*types.Option, sess *session.Session, run types.Run, providers types.OutputProviders) BaseModule {
	m := BaseModule{
		Metadata: metadata,
		Options:  opts,
		Session:  sess,
		Run:      run,
	}
	m.ConfigureOutputProviders(providers)
	return m
}

func (m *BaseModule) GetOptionByName(name string) *types.Option {
	return options.GetOptionByName(name, m.Options)
}

func (m *BaseModule) MakeResult(data any, opts ...types.ResultOption) types.Result {
	return types.NewResult(m.Platform, m.Name(), data, opts...)
}

// Send hands a result to the output providers. It blocks until the consumer
// picks it up or ctx is done.
func (m *BaseModule) Send(ctx context.Context, result types.Result) error {
	select {
	case m.Run.Data <- result:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *BaseModule) GetOutputProviders() []types.OutputProvider {
	return m.OutputProviders
}

func (m *BaseModule) ConfigureOutputProviders(providers types.OutputProviders) {
	m.OutputProviders = RenderOutputProviders(providers, m.Options)
}

// RenderOutputProviders instantiates providers, skipping those that decline
// the given options by returning nil.
func RenderOutputProviders(providers types.OutputProviders, opts []*types.Option) []types.OutputProvider {
	op := []types.OutputProvider{}
	for _, p := range providers {
		if provider := p(opts); provider != nil {
			op = append(op, provider)
		}
	}

	return op
}
