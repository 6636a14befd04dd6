package predictor

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Kind names a registered predictor backend.
type Kind string

const (
	KindLightGBM Kind = "lightgbm"
	KindCatBoost Kind = "catboost"
)

type constructor func(modelPath string) (Predictor, error)

var (
	registryMu sync.Mutex
	registry   = make(map[Kind]constructor)
)

// Register adds a new backend constructor to the registry. Backends call
// this from an init() func, mirroring the teacher's channel-proxy
// registration pattern.
func Register(kind Kind, ctor constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[kind]; exists {
		panic(fmt.Sprintf("predictor backend %q is already registered", kind))
	}
	registry[kind] = ctor
}

// New constructs a Predictor for the named backend kind, loading its model
// file from modelPath.
func New(kind Kind, modelPath string) (Predictor, error) {
	registryMu.Lock()
	ctor, ok := registry[kind]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unsupported predictor backend: %s", kind)
	}

	logrus.WithFields(logrus.Fields{"backend": kind, "model_path": modelPath}).Info("loading predictor model")
	return ctor(modelPath)
}

// Kinds returns every registered backend kind, for diagnostics.
func Kinds() []Kind {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}
