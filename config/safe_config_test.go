package config

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semsparql/vocabulary"
)

func TestSafeConfig_ThreadSafety(t *testing.T) {
	safeConfig := NewSafeConfig(Default())

	const workers = 20
	const operations = 200

	var wg sync.WaitGroup
	failures := make(chan error, workers)

	for i := 0; i < workers/2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < operations; j++ {
				cfg := safeConfig.Get()
				if cfg.Logging.Level != "info" && cfg.Logging.Level != "debug" {
					failures <- fmt.Errorf("unexpected level %q", cfg.Logging.Level)
					return
				}
			}
		}()
	}

	for i := 0; i < workers/2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < operations/10; j++ {
				next := Default()
				next.Logging.Level = "debug"
				if err := safeConfig.Update(next); err != nil {
					failures <- err
					return
				}
			}
		}()
	}

	wg.Wait()
	close(failures)
	for err := range failures {
		t.Fatal(err)
	}
}

func TestSafeConfig_NilHandling(t *testing.T) {
	safeConfig := NewSafeConfig(nil)
	require.NotNil(t, safeConfig.Get())
	assert.Equal(t, Default(), safeConfig.Get())
	assert.Error(t, safeConfig.Update(nil))
}

func TestSafeConfig_ValidationDuringUpdate(t *testing.T) {
	safeConfig := NewSafeConfig(Default())

	invalid := Default()
	invalid.Evaluator.BufferSegments = 1
	require.Error(t, safeConfig.Update(invalid))

	assert.Equal(t, 32, safeConfig.Get().Evaluator.BufferSegments, "failed update must leave the config untouched")
}

func TestSafeConfig_DeepCopy(t *testing.T) {
	seed := uint64(9)
	base := Default()
	base.Evaluator.RandSeed = &seed
	base.Namespaces = []vocabulary.Namespace{{Prefix: "ex", URI: "http://example.org/"}}
	safeConfig := NewSafeConfig(base)

	cfg1 := safeConfig.Get()
	cfg2 := safeConfig.Get()

	cfg1.Namespaces[0].Prefix = "changed"
	*cfg1.Evaluator.RandSeed = 10
	cfg1.Namespaces = append(cfg1.Namespaces, vocabulary.Namespace{Prefix: "x", URI: "urn:x:"})

	assert.Equal(t, "ex", cfg2.Namespaces[0].Prefix)
	assert.Len(t, cfg2.Namespaces, 1)
	assert.Equal(t, uint64(9), *cfg2.Evaluator.RandSeed)
	assert.Equal(t, uint64(9), *safeConfig.Get().Evaluator.RandSeed)
}

func TestConfigClone_Nil(t *testing.T) {
	var cfg *Config
	assert.NotNil(t, cfg.Clone())
}
