package registrymem_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus/stores/registrymem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TryAdmit(t *testing.T) {
	reg := registrymem.New()

	require.True(t, reg.TryAdmit("a@b.com|Acme Co"))
	require.False(t, reg.TryAdmit("a@b.com|Acme Co"))
	require.True(t, reg.TryAdmit("a@b.com|Other Co"))

	reg.Release("a@b.com|Acme Co")
	require.True(t, reg.TryAdmit("a@b.com|Acme Co"))
}

func Test_ReleaseAbsentKey(t *testing.T) {
	reg := registrymem.New()

	assert.NotPanics(t, func() {
		reg.Release("never admitted")
	})
}

func Test_Snapshot(t *testing.T) {
	reg := registrymem.New()

	reg.TryAdmit("k1")
	reg.TryAdmit("k2")

	assert.ElementsMatch(t, []string{"k1", "k2"}, reg.Snapshot())
}

func Test_Clear(t *testing.T) {
	reg := registrymem.New()

	reg.TryAdmit("k1")
	reg.TryAdmit("k2")

	assert.Equal(t, 2, reg.Clear())
	assert.Empty(t, reg.Snapshot())
	assert.True(t, reg.TryAdmit("k1"))
}

func Test_ConcurrentAdmit(t *testing.T) {
	reg := registrymem.New()

	const goroutines = 100

	var admitted int32
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			if reg.TryAdmit("same key") {
				atomic.AddInt32(&admitted, 1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), admitted)
}
