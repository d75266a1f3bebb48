package config

import (
	"github.com/dualword/PyMOL/internal/config"
	"github.com/dualword/PyMOL/internal/domain"
)

type Deps struct {
	Edit       func(fn func(lines []string) ([]string, error)) error
	EnsureFile func() (path string, wrote bool, err error)
	Get        func(string) (string, bool)
	GetAll     func() (map[string]string, error)
	IsValidKey func(string) bool
	Printf     func(string, ...any) (int, error)
	Println    func(...any) (int, error)

	// Changed is called after a key is written or removed. value is the
	// effective value afterwards.
	Changed func(key, value string)
}

func DefaultDeps(out domain.OutputWriter) Deps {
	return Deps{
		Edit:       config.Edit,
		EnsureFile: config.EnsureFile,
		Get:        config.Get,
		GetAll:     config.GetAll,
		IsValidKey: domain.IsValidConfigKey,
		Printf:     out.Printf,
		Println:    out.Println,
	}
}
