package bapps

import (
	"go.uber.org/zap"

	"github.com/milvus-io/cmdset/framework"
)

// BApp interface for cmdset interactive application
type BApp interface {
	Run(framework.State)
}

// AppOption application setup option function.
type AppOption func(*appOption)

type appOption struct {
	logger *zap.Logger
}

// WithLogger returns AppOption to setup application logger.
func WithLogger(logger *zap.Logger) AppOption {
	return func(opt *appOption) {
		opt.logger = logger
	}
}

func newAppOption(opts []AppOption) *appOption {
	opt := &appOption{logger: zap.NewNop()}
	for _, o := range opts {
		o(opt)
	}
	return opt
}
