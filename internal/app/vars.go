package app

import (
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/zerr"
)

// Var returns the stored value of a placeholder variable.
func (a *App) Var(name string) (string, bool, error) {
	return a.vars.Get(name)
}

// SetVar stores a placeholder variable.
func (a *App) SetVar(name, value string) error {
	if name == "" {
		return zerr.Wrap(domain.ErrVarStoreFailed, "variable name must not be empty")
	}
	if err := a.vars.Put(name, value); err != nil {
		return err
	}
	a.logger.Debug("variable stored", "variable", name)
	return nil
}

// Vars returns every stored placeholder variable.
func (a *App) Vars() (map[string]string, error) {
	return a.vars.All()
}
