package ports

// VarStore persists placeholder values between runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=var_store.go -destination=mocks/mock_var_store.go -package=mocks
type VarStore interface {
	// Get returns the stored value for name. The boolean is false when nothing is stored.
	Get(name string) (string, bool, error)

	// Put stores value under name.
	Put(name, value string) error

	// All returns a copy of every stored variable.
	All() (map[string]string, error)
}
